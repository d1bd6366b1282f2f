package holdingsParser

import (
	"testing"

	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet(rows ...[]string) [][]string {
	values := [][]string{
		{"My portfolio"},
		{"asset", "quantity", "note"},
	}
	values = append(values, rows...)
	return append(values, []string{"Total", "", ""})
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		values   [][]string
		expected []model.Holding
	}{
		{
			name:   "duplicate symbols are summed",
			values: sheet([]string{"aapl", "10"}, []string{"MSFT", "5"}, []string{"AAPL", "2.5"}),
			expected: []model.Holding{
				{Symbol: "AAPL", Quantity: decimal.RequireFromString("12.5")},
				{Symbol: "MSFT", Quantity: decimal.NewFromInt(5)},
			},
		},
		{
			name:   "thousands separators are stripped",
			values: sheet([]string{"VOO", "1,234.5"}),
			expected: []model.Holding{
				{Symbol: "VOO", Quantity: decimal.RequireFromString("1234.5")},
			},
		},
		{
			name:   "empty rows are skipped",
			values: sheet([]string{}, []string{"tsla", " 3 "}, []string{"", "", ""}),
			expected: []model.Holding{
				{Symbol: "TSLA", Quantity: decimal.NewFromInt(3)},
			},
		},
		{
			name: "trailer row is not data",
			values: [][]string{
				{"title"},
				{"quantity", "asset"},
				{"1", "nvda"},
				{"999", "TOTAL"},
			},
			expected: []model.Holding{
				{Symbol: "NVDA", Quantity: decimal.NewFromInt(1)},
			},
		},
		{
			name:     "no data rows",
			values:   sheet(),
			expected: []model.Holding{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			holdings, err := Parse(tc.values)
			require.NoError(t, err)
			require.Len(t, holdings, len(tc.expected))
			for i := range tc.expected {
				assert.Equal(t, tc.expected[i].Symbol, holdings[i].Symbol)
				assert.True(t, tc.expected[i].Quantity.Equal(holdings[i].Quantity),
					"quantity of %s: expected %s, got %s", tc.expected[i].Symbol, tc.expected[i].Quantity, holdings[i].Quantity)
			}
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	testCases := []struct {
		name   string
		values [][]string
	}{
		{
			name:   "non-numeric quantity",
			values: sheet([]string{"AAPL", "ten"}),
		},
		{
			name:   "empty quantity",
			values: sheet([]string{"AAPL", ""}),
		},
		{
			name:   "missing quantity cell",
			values: sheet([]string{"AAPL"}),
		},
		{
			name:   "missing asset",
			values: sheet([]string{"", "10"}),
		},
		{
			name: "quantity column absent",
			values: [][]string{
				{"title"},
				{"asset", "shares"},
				{"AAPL", "10"},
				{"total"},
			},
		},
		{
			name:   "no header",
			values: [][]string{{"title"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.values)
			assert.ErrorIs(t, err, service.ErrMalformedInput)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	d, err := ParseQuantity("1,234.5")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", d.String())

	_, err = ParseQuantity("n/a")
	assert.Error(t, err)
}
