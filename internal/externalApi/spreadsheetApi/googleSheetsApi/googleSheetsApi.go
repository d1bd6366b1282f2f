package googleSheetsApi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/KotFed0t/daily_results_bot/utils"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type GoogleSheetsApi struct {
	srv           *sheets.Service
	spreadsheetID string
}

func New(ctx context.Context, cfg *config.Config) *GoogleSheetsApi {
	srv, err := sheets.NewService(
		ctx,
		option.WithCredentialsFile(cfg.GoogleSheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		slog.Error("failed on sheets.NewService")
		panic(err)
	}
	return NewWithService(srv, cfg.GoogleSheets.SpreadsheetID)
}

func NewWithService(srv *sheets.Service, spreadsheetID string) *GoogleSheetsApi {
	return &GoogleSheetsApi{srv: srv, spreadsheetID: spreadsheetID}
}

// GetValues reads a range (a1 notation or a named range) as formatted strings.
func (a *GoogleSheetsApi) GetValues(ctx context.Context, rangeName string) ([][]string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "GoogleSheetsApi.GetValues"

	slog.Debug("GetValues start", slog.String("rqID", rqID), slog.String("op", op), slog.String("range", rangeName))

	resp, err := a.srv.Spreadsheets.Values.
		Get(a.spreadsheetID, rangeName).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("failed on reading spreadsheet values", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%w: %s", externalApi.ErrServiceError, err.Error())
	}

	values := toStrings(resp.Values)

	slog.Debug("GetValues completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(values)))

	return values, nil
}

func toStrings(raw [][]interface{}) [][]string {
	values := make([][]string, 0, len(raw))
	for _, rawRow := range raw {
		row := make([]string, 0, len(rawRow))
		for _, v := range rawRow {
			if v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(v))
		}
		values = append(values, row)
	}
	return values
}
