package dailyResultsService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/KotFed0t/daily_results_bot/internal/calculator/metricsCalculator"
	"github.com/KotFed0t/daily_results_bot/internal/converter/statusConverter"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/KotFed0t/daily_results_bot/internal/model"
	"github.com/KotFed0t/daily_results_bot/internal/parser/holdingsParser"
	"github.com/KotFed0t/daily_results_bot/internal/service"
	"github.com/KotFed0t/daily_results_bot/utils"
)

const successResult = "success"

type SpreadsheetApi interface {
	GetValues(ctx context.Context, rangeName string) ([][]string, error)
}

type FinanceApi interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]model.Quote, error)
}

type Publisher interface {
	Name() string
	Publish(ctx context.Context, text string) error
}

type ReportGenerator interface {
	Generate(ctx context.Context, summary model.PortfolioSummary) (fileBytes []byte, fileExtension string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
}

type Options struct {
	HoldingsRange      string
	AllowMissingQuotes bool
}

type DailyResultsService struct {
	spreadsheetApi  SpreadsheetApi
	financeApi      FinanceApi
	publishers      []Publisher
	reportGenerator ReportGenerator
	cloudStorage    CloudStorage
	opts            Options
	now             func() time.Time
}

func New(opts Options, spreadsheetApi SpreadsheetApi, financeApi FinanceApi, publishers ...Publisher) *DailyResultsService {
	return &DailyResultsService{
		spreadsheetApi: spreadsheetApi,
		financeApi:     financeApi,
		publishers:     publishers,
		opts:           opts,
		now:            time.Now,
	}
}

// WithReport enables uploading an xlsx report of the day before publishing.
func (s *DailyResultsService) WithReport(reportGenerator ReportGenerator, cloudStorage CloudStorage) *DailyResultsService {
	s.reportGenerator = reportGenerator
	s.cloudStorage = cloudStorage
	return s
}

// HandleEvent is the externally triggered entry point. The payload is not used.
func (s *DailyResultsService) HandleEvent(ctx context.Context, payload []byte) (string, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DailyResultsService.HandleEvent"

	slog.Info("event received", slog.String("rqID", rqID), slog.String("op", op), slog.Int("payloadSize", len(payload)))

	if err := s.PostDailyResults(ctx); err != nil {
		return "", err
	}

	return successResult, nil
}

func (s *DailyResultsService) PostDailyResults(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DailyResultsService.PostDailyResults"

	slog.Debug("PostDailyResults start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("PostDailyResults finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	summary, err := s.GetDailySummary(ctx)
	if err != nil {
		return err
	}

	if s.reportGenerator != nil && s.cloudStorage != nil {
		if err = s.uploadReport(ctx, summary); err != nil {
			return err
		}
	}

	text := statusConverter.DailyResultsStatus(summary)

	slog.Debug("status rendered", slog.String("rqID", rqID), slog.String("op", op), slog.String("text", text))

	for _, publisher := range s.publishers {
		if err = publisher.Publish(ctx, text); err != nil {
			slog.Error("got error from publisher.Publish", slog.String("rqID", rqID), slog.String("op", op), slog.String("publisher", publisher.Name()), slog.String("err", err.Error()))
			return err
		}
	}

	return nil
}

// GetDailySummary loads holdings, fetches their quotes and computes the day's metrics.
func (s *DailyResultsService) GetDailySummary(ctx context.Context) (model.PortfolioSummary, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DailyResultsService.GetDailySummary"

	holdings, err := s.LoadHoldings(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	if len(holdings) == 0 {
		slog.Error("holdings range has no data rows", slog.String("rqID", rqID), slog.String("op", op))
		return model.PortfolioSummary{}, fmt.Errorf("%w: no holdings", service.ErrEmptyPortfolio)
	}

	symbols := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		symbols = append(symbols, holding.Symbol)
	}

	quotes, err := s.financeApi.GetQuotes(ctx, symbols)
	if err != nil {
		var missingErr *externalApi.MissingQuotesError
		if !errors.As(err, &missingErr) || !s.opts.AllowMissingQuotes {
			slog.Error("got error from financeApi.GetQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return model.PortfolioSummary{}, err
		}
		slog.Warn("quotes are missing, assets are skipped", slog.String("rqID", rqID), slog.String("op", op), slog.Any("symbols", missingErr.Symbols))
	}

	summary, err := metricsCalculator.Calculate(holdings, quotes)
	if err != nil {
		slog.Error("got error from metricsCalculator.Calculate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.PortfolioSummary{}, err
	}

	slog.Info(
		"daily summary calculated",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("totalPercentChange", summary.TotalPercentChange.String()),
		slog.String("topPercent", summary.TopPercent.Asset),
		slog.String("worstPercent", summary.WorstPercent.Asset),
		slog.String("topMoney", summary.TopMoney.Asset),
		slog.String("worstMoney", summary.WorstMoney.Asset),
	)

	return summary, nil
}

func (s *DailyResultsService) LoadHoldings(ctx context.Context) ([]model.Holding, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DailyResultsService.LoadHoldings"

	values, err := s.spreadsheetApi.GetValues(ctx, s.opts.HoldingsRange)
	if err != nil {
		slog.Error("got error from spreadsheetApi.GetValues", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	holdings, err := holdingsParser.Parse(values)
	if err != nil {
		slog.Error("can't parse holdings", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	slog.Debug("holdings loaded", slog.String("rqID", rqID), slog.String("op", op), slog.Int("holdings", len(holdings)))

	return holdings, nil
}

func (s *DailyResultsService) uploadReport(ctx context.Context, summary model.PortfolioSummary) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "DailyResultsService.uploadReport"

	fileBytes, ext, err := s.reportGenerator.Generate(ctx, summary)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	filename := fmt.Sprintf("daily_results_%s%s", s.now().Format(time.DateOnly), ext)

	link, err := s.cloudStorage.UploadFile(ctx, bytes.NewReader(fileBytes), filename)
	if err != nil {
		slog.Error("got error from cloudStorage.UploadFile", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Info("report uploaded", slog.String("rqID", rqID), slog.String("op", op), slog.String("link", link))

	return nil
}
