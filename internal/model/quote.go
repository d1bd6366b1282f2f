package model

import "github.com/shopspring/decimal"

// Quote holds the current price and the absolute change since the previous close.
type Quote struct {
	Symbol      string
	CompanyName string
	Currency    string
	Price       decimal.Decimal
	Change      decimal.Decimal
}
