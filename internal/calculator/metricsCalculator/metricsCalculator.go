package metricsCalculator

import (
	"fmt"
	"slices"

	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/internal/service"
	"github.com/shopspring/decimal"
)

const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Calculate joins holdings with quotes and picks the day's extremes.
// Holdings without a quote are dropped by the join.
func Calculate(holdings []model.Holding, quotes map[string]model.Quote) (model.PortfolioSummary, error) {
	assets, err := JoinAssets(holdings, quotes)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	if len(assets) == 0 {
		return model.PortfolioSummary{}, fmt.Errorf("%w: no holding has a quote", service.ErrEmptyPortfolio)
	}

	totalPercentChange, totalValue, err := TotalPercentChange(assets)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	percent := func(a model.AssetResult) decimal.Decimal { return a.PercentChange }
	money := func(a model.AssetResult) decimal.Decimal { return a.MoneyChange }

	return model.PortfolioSummary{
		TotalPercentChange: totalPercentChange,
		TotalValue:         totalValue,
		TopPercent:         sortedBy(assets, percent, true)[0],
		WorstPercent:       sortedBy(assets, percent, false)[0],
		TopMoney:           sortedBy(assets, money, true)[0],
		WorstMoney:         sortedBy(assets, money, false)[0],
		Assets:             assets,
	}, nil
}

func JoinAssets(holdings []model.Holding, quotes map[string]model.Quote) ([]model.AssetResult, error) {
	assets := make([]model.AssetResult, 0, len(holdings))

	for _, holding := range holdings {
		quote, ok := quotes[holding.Symbol]
		if !ok {
			continue
		}

		percentChange, err := PercentChange(quote.Price, quote.Change)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", holding.Symbol, err)
		}

		assets = append(assets, model.AssetResult{
			Asset:         holding.Symbol,
			CompanyName:   quote.CompanyName,
			Quantity:      holding.Quantity,
			Price:         quote.Price,
			Change:        quote.Change,
			PercentChange: percentChange,
			MoneyChange:   quote.Change.Mul(holding.Quantity),
		})
	}

	return assets, nil
}

// PercentChange is change relative to the previous close (price - change), in percent.
func PercentChange(price, change decimal.Decimal) (decimal.Decimal, error) {
	prevClose := price.Sub(change)
	if prevClose.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: previous close is zero", service.ErrInvalidQuote)
	}

	return change.Div(prevClose).Mul(hundred).RoundBank(percentPlaces), nil
}

// TotalPercentChange weights every asset percent change by its share of the portfolio value.
func TotalPercentChange(assets []model.AssetResult) (totalPercentChange, totalValue decimal.Decimal, err error) {
	for _, asset := range assets {
		totalValue = totalValue.Add(asset.Value())
	}

	if totalValue.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: portfolio value is zero", service.ErrEmptyPortfolio)
	}

	for _, asset := range assets {
		proportion := asset.Value().Div(totalValue)
		totalPercentChange = totalPercentChange.Add(asset.PercentChange.Mul(proportion))
	}

	return totalPercentChange.RoundBank(percentPlaces), totalValue, nil
}

// sortedBy returns a sorted copy, equal keys keep input order.
func sortedBy(assets []model.AssetResult, key func(model.AssetResult) decimal.Decimal, desc bool) []model.AssetResult {
	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b model.AssetResult) int {
		if desc {
			return key(b).Cmp(key(a))
		}
		return key(a).Cmp(key(b))
	})
	return sorted
}
