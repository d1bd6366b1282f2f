package fmpModel

import "github.com/shopspring/decimal"

type Profile struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Currency    string          `json:"currency"`
	Price       decimal.Decimal `json:"price"`
	Changes     decimal.Decimal `json:"changes"`
}
