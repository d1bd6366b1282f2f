package statusConverter

import (
	"fmt"
	"strings"

	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/shopspring/decimal"
)

const (
	gainMarker = "🟢"
	lossMarker = "🔴"
)

func DailyResultsStatus(summary model.PortfolioSummary) string {
	var sb strings.Builder

	sb.WriteString("Trading session is closed, let's take a look at today's results:\n\n")

	sb.WriteString(fmt.Sprintf("Overall %s %s : %s%%\n\n",
		gainOrLoss(summary.TotalPercentChange),
		signMarker(summary.TotalPercentChange),
		FormatPercent(summary.TotalPercentChange),
	))

	sb.WriteString(fmt.Sprintf("Top Gainer %s : $%s (%s%%)\n\n",
		signMarker(summary.TopPercent.PercentChange),
		summary.TopPercent.Asset,
		signedPercent(summary.TopPercent.PercentChange),
	))

	sb.WriteString(fmt.Sprintf("Top Loser %s : $%s (%s%%)",
		signMarker(summary.WorstPercent.PercentChange),
		summary.WorstPercent.Asset,
		signedPercent(summary.WorstPercent.PercentChange),
	))

	return sb.String()
}

// FormatPercent prints at most two and at least one decimal: 10.0, 2.04, -2.5.
func FormatPercent(d decimal.Decimal) string {
	s := d.StringFixedBank(2)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s
}

func signedPercent(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatPercent(d)
	}
	return FormatPercent(d)
}

// zero counts as a loss
func gainOrLoss(d decimal.Decimal) string {
	if d.IsPositive() {
		return "Gain"
	}
	return "Loss"
}

func signMarker(d decimal.Decimal) string {
	if d.IsPositive() {
		return gainMarker
	}
	return lossMarker
}
