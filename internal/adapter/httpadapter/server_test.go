package httpadapter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/adapter/httpadapter"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type stubExtractor struct {
	got []domain.Document
}

func (s *stubExtractor) Extract(doc domain.Document) domain.Record {
	s.got = append(s.got, doc)
	rec := domain.Record{DocumentID: doc.ID, Source: doc.Source, ProcessedAt: time.Date(2024, 10, 22, 15, 30, 0, 0, time.UTC)}
	rec.Location = domain.NewField("300 km East of Aparri, Cagayan", 0.9)
	return rec
}

func newTestServer(readyErr error) (*httpadapter.Server, *stubExtractor) {
	ext := &stubExtractor{}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, ext, domain.ModeConfidence, slog.Default()), ext
}

func do(srv http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, bytes.NewReader(body)))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := do(srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	srv, _ := newTestServer(nil)
	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/readyz", nil).Code)

	srv, _ = newTestServer(fmt.Errorf("no batch processed yet"))
	assert.Equal(t, http.StatusServiceUnavailable, do(srv, http.MethodGet, "/readyz", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := do(srv, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

const docBody = `{"id":"TCB-2024-15","source":"bulletin.pdf","pages":[{"number":1,"text":"TCWS"}]}`

func TestExtract_Confidence(t *testing.T) {
	srv, ext := newTestServer(nil)
	rec := do(srv, http.MethodPost, "/extract", []byte(docBody))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Len(t, ext.got, 1)
	assert.Equal(t, "TCB-2024-15", ext.got[0].ID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	loc := body["typhoon_location_text"].(map[string]any)
	assert.Equal(t, "300 km East of Aparri, Cagayan", loc["value"])
	assert.InDelta(t, 0.9, loc["confidence"], 1e-9)
}

func TestExtract_DatasetMode(t *testing.T) {
	srv, _ := newTestServer(nil)
	rec := do(srv, http.MethodPost, "/extract?mode=dataset", []byte(docBody))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "300 km East of Aparri, Cagayan", body["typhoon_location_text"])
}

func TestExtract_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"undecodable body", "/extract", `{not json`},
		{"no pages", "/extract", `{"id":"x","pages":[]}`},
		{"unknown mode", "/extract?mode=csv", docBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(nil)
			rec := do(srv, http.MethodPost, tt.target, []byte(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestExtract_RejectsGet(t *testing.T) {
	srv, _ := newTestServer(nil)
	assert.Equal(t, http.StatusMethodNotAllowed, do(srv, http.MethodGet, "/extract", nil).Code)
}
