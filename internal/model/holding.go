package model

import "github.com/shopspring/decimal"

type Holding struct {
	Symbol   string
	Quantity decimal.Decimal
}
