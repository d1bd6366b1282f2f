package fmpApi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/daily_results_bot/config"
	"github.com/KotFed0t/daily_results_bot/internal/externalApi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *FmpApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.FinanceApi.Url = srv.URL
	cfg.API.FinanceApi.ApiKey = "secret"
	return New(cfg)
}

func TestGetQuotes(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/profile/AAPL,MSFT", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"AAPL","companyName":"Apple Inc.","currency":"USD","price":150,"changes":3},
			{"symbol":"MSFT","companyName":"Microsoft","currency":"USD","price":300.5,"changes":-6.25}
		]`))
	})

	quotes, err := api.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "150", quotes["AAPL"].Price.String())
	assert.Equal(t, "3", quotes["AAPL"].Change.String())
	assert.Equal(t, "Apple Inc.", quotes["AAPL"].CompanyName)
	assert.Equal(t, "300.5", quotes["MSFT"].Price.String())
	assert.Equal(t, "-6.25", quotes["MSFT"].Change.String())
}

func TestGetQuotes_MissingSymbol(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","price":150,"changes":3}]`))
	})

	quotes, err := api.GetQuotes(context.Background(), []string{"AAPL", "NOPE"})
	require.ErrorIs(t, err, externalApi.ErrQuoteUnavailable)

	var missingErr *externalApi.MissingQuotesError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{"NOPE"}, missingErr.Symbols)

	assert.Len(t, quotes, 1)
	assert.Contains(t, quotes, "AAPL")
}

func TestGetQuotes_ServiceError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"Error Message":"Invalid API KEY."}`))
			},
		},
		{
			name: "error object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"Error Message":"Limit Reach"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestApi(t, tt.handler)
			_, err := api.GetQuotes(context.Background(), []string{"AAPL"})
			assert.ErrorIs(t, err, externalApi.ErrServiceError)
		})
	}
}
