package googleDriveApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *GoogleDriveApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	driveSrv, err := drive.NewService(
		context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	return NewWithService(driveSrv, 24*time.Hour)
}

func TestUploadFile(t *testing.T) {
	var mu sync.Mutex
	var permissionFor string

	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/permissions"):
			mu.Lock()
			permissionFor = strings.TrimSuffix(strings.TrimPrefix(r.URL.Path[strings.Index(r.URL.Path, "files/"):], "files/"), "/permissions")
			mu.Unlock()
			_, _ = w.Write([]byte(`{"id":"perm","type":"anyone","role":"reader"}`))
		case r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"id":"file-1","name":"report.xlsx"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	link, err := api.UploadFile(context.Background(), strings.NewReader("content"), "report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/file/d/file-1/view", link)
	assert.Equal(t, "file-1", permissionFor)
}

func TestDeleteOldFiles(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	var deleted []string
	trashEmptied := false

	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
			_, _ = w.Write([]byte(`{"files":[
				{"id":"old","createdTime":"2026-10-10T12:00:00Z"},
				{"id":"fresh","createdTime":"2026-10-18T08:00:00Z"},
				{"id":"broken","createdTime":"yesterday"}
			]}`))
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/files/trash"):
			trashEmptied = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			deleted = append(deleted, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	api.now = func() time.Time { return now }

	err := api.DeleteOldFiles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"old"}, deleted)
	assert.True(t, trashEmptied)
}
