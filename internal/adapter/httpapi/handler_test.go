package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujayx07/TruthScope/internal/domain"
	"github.com/sujayx07/TruthScope/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAnalyze struct {
	verdict *domain.Verdict
	err     error
}

func (s *stubAnalyze) Execute(context.Context, usecase.AnalyzeArticleInput) (*domain.Verdict, error) {
	return s.verdict, s.err
}

type stubHeadlines struct {
	reports []usecase.HeadlineReport
	err     error
}

func (s *stubHeadlines) Execute(context.Context, string, string) ([]usecase.HeadlineReport, error) {
	return s.reports, s.err
}

type stubResultStore struct {
	verdict   *domain.Verdict
	writtenAt time.Time
	err       error
}

func (s *stubResultStore) Upsert(context.Context, string, *domain.Verdict) error { return nil }

func (s *stubResultStore) Get(context.Context, string) (*domain.Verdict, time.Time, error) {
	return s.verdict, s.writtenAt, s.err
}

func newTestHandler(analyze usecase.AnalyzeArticleUsecase, headlines usecase.TopHeadlinesUsecase, results domain.AnalysisResultRepository) *Handler {
	return NewHandler(analyze, headlines, results, "test-model", func(context.Context) error { return nil }, testLogger())
}

func doRequest(t *testing.T, handler echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestAnalyze_Success(t *testing.T) {
	verdict := &domain.Verdict{Label: domain.LabelCredible, Score: 0.9, Highlights: []string{}, Reasoning: []string{}, FactCheck: []domain.Citation{}}
	handler := newTestHandler(&stubAnalyze{verdict: verdict}, &stubHeadlines{}, &stubResultStore{})

	body := `{"url": "https://example.com/a", "article_text": "text"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(t, handler.Analyze, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.LabelCredible, got.Label)
	assert.Equal(t, 0.9, got.Score)
}

func TestAnalyze_MissingFields(t *testing.T) {
	handler := newTestHandler(&stubAnalyze{}, &stubHeadlines{}, &stubResultStore{})

	tests := []string{
		`{"url": "", "article_text": "text"}`,
		`{"url": "https://example.com", "article_text": ""}`,
		`{}`,
	}
	for _, body := range tests {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := doRequest(t, handler.Analyze, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"collaborator failure", &domain.APIError{Collaborator: "search", Message: "down"}, http.StatusBadGateway},
		{"model failure", &domain.APIError{Collaborator: "model", Message: "no final answer after 4 tool turns"}, http.StatusInternalServerError},
		{"missing credential", &domain.ConfigurationError{Setting: "ZENROWS_API_KEY"}, http.StatusServiceUnavailable},
		{"store fault", &domain.DatabaseError{Op: "lookup", Err: context.DeadlineExceeded}, http.StatusInternalServerError},
		{"bad model output", &domain.InvalidModelOutputError{Reason: "not json", Raw: "oops"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubAnalyze{err: tt.err}, &stubHeadlines{}, &stubResultStore{})

			req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"url": "https://x.com", "article_text": "t"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := doRequest(t, handler.Analyze, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAnalyze_InvalidModelOutputIncludesRaw(t *testing.T) {
	handler := newTestHandler(&stubAnalyze{err: &domain.InvalidModelOutputError{Reason: "not json", Raw: "raw model text"}}, &stubHeadlines{}, &stubResultStore{})

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"url": "https://x.com", "article_text": "t"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequest(t, handler.Analyze, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "raw model text", body["raw_response"])
}

func TestCachedAnalysis(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		writtenAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		store := &stubResultStore{
			verdict:   &domain.Verdict{Label: domain.LabelMisleading, Score: 0.1},
			writtenAt: writtenAt,
		}
		handler := newTestHandler(&stubAnalyze{}, &stubHeadlines{}, store)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis?url=https%3A%2F%2Fx.com%2Fa", nil)
		rec := doRequest(t, handler.CachedAnalysis, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "https://x.com/a", body["url"])
		assert.Equal(t, "2026-08-30T12:00:00Z", body["timestamp"])
	})

	t.Run("miss", func(t *testing.T) {
		handler := newTestHandler(&stubAnalyze{}, &stubHeadlines{}, &stubResultStore{err: domain.ErrAnalysisNotFound})

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis?url=https%3A%2F%2Fx.com%2Fa", nil)
		rec := doRequest(t, handler.CachedAnalysis, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing url param", func(t *testing.T) {
		handler := newTestHandler(&stubAnalyze{}, &stubHeadlines{}, &stubResultStore{})

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis", nil)
		rec := doRequest(t, handler.CachedAnalysis, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTopHeadlines(t *testing.T) {
	headlines := &stubHeadlines{reports: []usecase.HeadlineReport{
		{Title: "story", Source: "Reuters", URL: "https://a.com", FactCheck: []domain.FactCheckRecord{}},
	}}
	handler := newTestHandler(&stubAnalyze{}, headlines, &stubResultStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/news", nil)
	rec := doRequest(t, handler.TopHeadlines, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]usecase.HeadlineReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["news"], 1)
	assert.Equal(t, "story", body["news"][0].Title)
}

func TestIndex(t *testing.T) {
	handler := newTestHandler(&stubAnalyze{}, &stubHeadlines{}, &stubResultStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := doRequest(t, handler.Index, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test-model", body["model"])
	assert.Equal(t, "ok", body["database"])
}
