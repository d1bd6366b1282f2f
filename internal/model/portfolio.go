package model

import (
	"github.com/shopspring/decimal"
)

type AssetResult struct {
	Asset         string
	CompanyName   string
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	Change        decimal.Decimal
	PercentChange decimal.Decimal
	MoneyChange   decimal.Decimal
}

// Value is the current market value of the position.
func (a AssetResult) Value() decimal.Decimal {
	return a.Price.Mul(a.Quantity)
}

type PortfolioSummary struct {
	TotalPercentChange decimal.Decimal
	TotalValue         decimal.Decimal
	TopPercent         AssetResult
	WorstPercent       AssetResult
	TopMoney           AssetResult
	WorstMoney         AssetResult
	Assets             []AssetResult
}
