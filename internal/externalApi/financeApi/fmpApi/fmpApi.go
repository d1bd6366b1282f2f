package fmpApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/internal/model/fmpModel"
	"github.com/KotFed0t/daily_results_bot/utils"
	"github.com/go-resty/resty/v2"
)

const profileUrl = "/api/v3/profile/{symbols}"

type FmpApi struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *FmpApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.FinanceApi.Url)
	return &FmpApi{client: client, apiKey: cfg.API.FinanceApi.ApiKey}
}

// GetQuotes fetches all symbols in one request. When some symbols are absent from
// the response the quotes that did arrive are returned along with a *externalApi.MissingQuotesError.
func (a *FmpApi) GetQuotes(ctx context.Context, symbols []string) (map[string]model.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "FmpApi.GetQuotes"

	slog.Debug("GetQuotes start", slog.String("rqID", rqID), slog.String("op", op), slog.Any("symbols", symbols))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetRawPathParam("symbols", strings.Join(symbols, ",")).
		SetQueryParam("apikey", a.apiKey).
		Get(profileUrl)
	if err != nil {
		slog.Error("error while dialing FmpApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%w: %s", externalApi.ErrServiceError, err.Error())
	}

	if !resp.IsSuccess() {
		slog.Error(
			"FmpApi responded with failure",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.Int("status", resp.StatusCode()),
			slog.String("body", resp.String()),
		)
		return nil, fmt.Errorf("%w: status %d", externalApi.ErrServiceError, resp.StatusCode())
	}

	var profiles []fmpModel.Profile
	err = json.Unmarshal(resp.Body(), &profiles)
	if err != nil {
		slog.Error("can't unmarshall response into []fmpModel.Profile", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%w: %s", externalApi.ErrServiceError, err.Error())
	}

	quotes := make(map[string]model.Quote, len(profiles))
	for _, p := range profiles {
		symbol := strings.ToUpper(p.Symbol)
		quotes[symbol] = model.Quote{
			Symbol:      symbol,
			CompanyName: p.CompanyName,
			Currency:    p.Currency,
			Price:       p.Price,
			Change:      p.Changes,
		}
	}

	var missing []string
	for _, symbol := range symbols {
		if _, ok := quotes[symbol]; !ok {
			missing = append(missing, symbol)
		}
	}

	slog.Debug("GetQuotes completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("quotes", len(quotes)))

	if len(missing) > 0 {
		return quotes, &externalApi.MissingQuotesError{Symbols: missing}
	}

	return quotes, nil
}
