package httpTransport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KotFed0t/daily_results_bot/utils"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	payload []byte
	rqID    string
	err     error
}

func (f *fakeService) HandleEvent(ctx context.Context, payload []byte) (string, error) {
	f.payload = payload
	f.rqID = utils.GetRequestIDFromCtx(ctx)
	if f.err != nil {
		return "", f.err
	}
	return "success", nil
}

func TestTrigger(t *testing.T) {
	srv := &fakeService{}
	handler := NewController(srv).Routes()

	for _, path := range []string{"/", "/trigger"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"message":{"data":"tick"}}`))
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "success", rec.Body.String(), path)
		assert.Equal(t, `{"message":{"data":"tick"}}`, string(srv.payload), path)
		assert.NotEmpty(t, srv.rqID, path)
	}
}

func TestTrigger_Failure(t *testing.T) {
	handler := NewController(&fakeService{err: errors.New("boom")}).Routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "success")
}

func TestHealth(t *testing.T) {
	handler := NewController(&fakeService{}).Routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrigger_MethodNotAllowed(t *testing.T) {
	srv := &fakeService{}
	handler := NewController(srv).Routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trigger", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Nil(t, srv.payload)
}
