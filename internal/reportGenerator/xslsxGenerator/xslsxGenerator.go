package xslsxGenerator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Results"

var hundred = decimal.NewFromInt(100)

type XSLSXGenerator struct{}

func New() *XSLSXGenerator {
	return &XSLSXGenerator{}
}

func (g *XSLSXGenerator) Generate(ctx context.Context, summary model.PortfolioSummary) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XSLSXGenerator.Generate"

	if len(summary.Assets) == 0 {
		return nil, "", errors.New("empty summary")
	}

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		slog.Error("got error while renaming Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillSheet(f, summary); err != nil {
		slog.Error("got error while filling sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XSLSXGenerator) fillSheet(f *excelize.File, summary model.PortfolioSummary) error {
	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return err
	}

	// positions
	err = f.MergeCell(sheetName, "A1", "I1")
	if err != nil {
		return err
	}
	_ = f.SetCellStr(sheetName, "A1", "Positions")
	if err := f.SetCellStyle(sheetName, "A1", "A1", headerStyleID); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}

	headers := []string{"asset", "company", "quantity", "price", "change", "change %", "change $", "value", "weight %"}
	if err := f.SetSheetRow(sheetName, "A2", &headers); err != nil {
		return err
	}

	for i, asset := range summary.Assets {
		row := i + 3
		weight := decimal.Zero
		if !summary.TotalValue.IsZero() {
			weight = asset.Value().Div(summary.TotalValue).Mul(hundred).Round(2)
		}

		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", row), asset.Asset)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", row), asset.CompanyName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), asset.Quantity.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), asset.Price.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), asset.Change.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), asset.PercentChange.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), asset.MoneyChange.InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), asset.Value().InexactFloat64())
		_ = f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), weight.InexactFloat64())
	}

	// day summary
	rowNum := len(summary.Assets) + 5

	err = f.MergeCell(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("C%d", rowNum))
	if err != nil {
		return err
	}
	_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", rowNum), "Summary")
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), headerStyleID); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}

	lines := []struct {
		title string
		asset string
		value decimal.Decimal
	}{
		{title: "total change %", value: summary.TotalPercentChange},
		{title: "total value", value: summary.TotalValue},
		{title: "top gainer %", asset: summary.TopPercent.Asset, value: summary.TopPercent.PercentChange},
		{title: "top loser %", asset: summary.WorstPercent.Asset, value: summary.WorstPercent.PercentChange},
		{title: "top gainer $", asset: summary.TopMoney.Asset, value: summary.TopMoney.MoneyChange},
		{title: "top loser $", asset: summary.WorstMoney.Asset, value: summary.WorstMoney.MoneyChange},
	}

	for _, line := range lines {
		rowNum++
		_ = f.SetCellStr(sheetName, fmt.Sprintf("A%d", rowNum), line.title)
		_ = f.SetCellStr(sheetName, fmt.Sprintf("B%d", rowNum), line.asset)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), line.value.InexactFloat64())
	}

	return nil
}
