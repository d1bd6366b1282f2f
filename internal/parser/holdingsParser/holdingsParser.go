package holdingsParser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/internal/service"
	"github.com/shopspring/decimal"
)

const (
	assetColumn    = "asset"
	quantityColumn = "quantity"

	headerRow    = 1
	firstDataRow = 2
)

// Parse turns the raw values of the holdings range into holdings sorted by symbol.
// Row 0 is a title, row 1 the header and the last row a totals trailer, so only
// rows 2..n-2 carry data. Quantities of the same symbol are summed.
func Parse(values [][]string) ([]model.Holding, error) {
	if len(values) <= headerRow {
		return nil, fmt.Errorf("%w: header row is missing", service.ErrMalformedInput)
	}

	assetIdx, quantityIdx, err := columnIndexes(values[headerRow])
	if err != nil {
		return nil, err
	}

	quantities := make(map[string]decimal.Decimal)

	for i := firstDataRow; i < len(values)-1; i++ {
		row := values[i]
		if isEmptyRow(row) {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(cell(row, assetIdx)))
		if symbol == "" {
			return nil, fmt.Errorf("%w: row %d: empty %s", service.ErrMalformedInput, i, assetColumn)
		}

		quantity, err := ParseQuantity(cell(row, quantityIdx))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", service.ErrMalformedInput, i, err.Error())
		}

		quantities[symbol] = quantities[symbol].Add(quantity)
	}

	holdings := make([]model.Holding, 0, len(quantities))
	for symbol, quantity := range quantities {
		holdings = append(holdings, model.Holding{Symbol: symbol, Quantity: quantity})
	}

	slices.SortFunc(holdings, func(a, b model.Holding) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})

	return holdings, nil
}

// ParseQuantity parses a number formatted with "," thousands separators.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty %s", quantityColumn)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", quantityColumn, raw)
	}

	return d, nil
}

func columnIndexes(header []string) (assetIdx, quantityIdx int, err error) {
	assetIdx, quantityIdx = -1, -1

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case assetColumn:
			assetIdx = i
		case quantityColumn:
			quantityIdx = i
		}
	}

	if assetIdx == -1 {
		return 0, 0, fmt.Errorf("%w: column %s not found", service.ErrMalformedInput, assetColumn)
	}
	if quantityIdx == -1 {
		return 0, 0, fmt.Errorf("%w: column %s not found", service.ErrMalformedInput, quantityColumn)
	}

	return assetIdx, quantityIdx, nil
}

// sheets API omits trailing empty cells, so a row may be shorter than the header
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
