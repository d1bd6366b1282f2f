package httpTransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	customMW "github.com/KotFed0t/daily_results_bot/internal/transport/httpTransport/middleware"
	"github.com/KotFed0t/daily_results_bot/utils"
	"github.com/go-chi/chi/v5"
	chiMW "github.com/go-chi/chi/v5/middleware"
)

const maxPayloadBytes = 1 << 20

type DailyResultsService interface {
	HandleEvent(ctx context.Context, payload []byte) (string, error)
}

type Controller struct {
	dailyResultsService DailyResultsService
}

func NewController(dailyResultsService DailyResultsService) *Controller {
	return &Controller{dailyResultsService: dailyResultsService}
}

func (ctrl *Controller) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMW.Recoverer, customMW.Logger())

	r.Get("/health", ctrl.Health)
	r.Post("/", ctrl.Trigger)
	r.Post("/trigger", ctrl.Trigger)

	return r
}

func (ctrl *Controller) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Trigger runs the daily results pipeline once per request. The event payload is passed through unused.
func (ctrl *Controller) Trigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		slog.Error("can't read event payload", slog.String("rqID", rqID), slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result, err := ctrl.dailyResultsService.HandleEvent(ctx, payload)
	if err != nil {
		slog.Error("got error from dailyResultsService.HandleEvent", slog.String("rqID", rqID), slog.String("err", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result))
}
