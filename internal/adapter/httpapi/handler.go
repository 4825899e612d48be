// Package httpapi exposes the analysis pipeline over Echo.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sujayx07/TruthScope/internal/domain"
	"github.com/sujayx07/TruthScope/internal/usecase"
)

// Handler holds the usecases behind the public endpoints.
type Handler struct {
	analyze   usecase.AnalyzeArticleUsecase
	headlines usecase.TopHeadlinesUsecase
	results   domain.AnalysisResultRepository
	modelName string
	pingDB    func(context.Context) error
	logger    *slog.Logger
}

func NewHandler(
	analyze usecase.AnalyzeArticleUsecase,
	headlines usecase.TopHeadlinesUsecase,
	results domain.AnalysisResultRepository,
	modelName string,
	pingDB func(context.Context) error,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		analyze:   analyze,
		headlines: headlines,
		results:   results,
		modelName: modelName,
		pingDB:    pingDB,
		logger:    logger,
	}
}

type analyzeRequest struct {
	URL         string `json:"url"`
	ArticleText string `json:"article_text"`
}

// Analyze runs the full pipeline for one article.
// (POST /v1/analyze)
func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "request must be JSON"})
	}
	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.ArticleText) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing 'url' or 'article_text' in JSON payload"})
	}

	verdict, err := h.analyze.Execute(c.Request().Context(), usecase.AnalyzeArticleInput{
		URL:         req.URL,
		ArticleText: req.ArticleText,
	})
	if err != nil {
		return h.analysisError(c, err)
	}
	return c.JSON(http.StatusOK, verdict)
}

// analysisError maps pipeline failures onto transport status codes:
// downstream collaborator failures are 502, configuration faults 503, and
// everything internal (store faults, unparseable model output) 500.
func (h *Handler) analysisError(c echo.Context, err error) error {
	var apiErr *domain.APIError
	var cfgErr *domain.ConfigurationError
	var dbErr *domain.DatabaseError
	var modelErr *domain.InvalidModelOutputError

	switch {
	case errors.As(err, &modelErr):
		h.logger.Error("model returned malformed verdict", "reason", modelErr.Reason)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":        "model did not return a valid verdict",
			"raw_response": modelErr.Raw,
		})
	case errors.As(err, &apiErr):
		h.logger.Error("downstream collaborator failed", "collaborator", apiErr.Collaborator, "error", err)
		// Model failures are this service's own pipeline breaking, not a bad
		// gateway to an evidence collaborator.
		if apiErr.Collaborator == "model" {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": apiErr.Error()})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": apiErr.Error()})
	case errors.As(err, &cfgErr):
		h.logger.Error("analysis feature misconfigured", "setting", cfgErr.Setting)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": cfgErr.Error()})
	case errors.As(err, &dbErr):
		h.logger.Error("storage failure during analysis", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "analysis store unavailable"})
	default:
		h.logger.Error("analysis failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// CachedAnalysis returns the stored verdict for a URL, if any.
// (GET /v1/analysis?url=...)
func (h *Handler) CachedAnalysis(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing 'url' query parameter"})
	}

	verdict, writtenAt, err := h.results.Get(c.Request().Context(), url)
	if errors.Is(err, domain.ErrAnalysisNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no analysis cached for url"})
	}
	if err != nil {
		h.logger.Error("failed to read cached analysis", "url", url, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "analysis store unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"url":       url,
		"result":    verdict,
		"timestamp": writtenAt.Format(time.RFC3339),
	})
}

// TopHeadlines returns fact-check-annotated headlines.
// (GET /v1/news?query=...&category=...)
func (h *Handler) TopHeadlines(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		query = "news"
	}
	category := c.QueryParam("category")
	if category == "" {
		category = "general"
	}

	reports, err := h.headlines.Execute(c.Request().Context(), query, category)
	if err != nil {
		return h.analysisError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"news": reports})
}

// Index reports basic service status.
// (GET /)
func (h *Handler) Index(c echo.Context) error {
	dbStatus := "ok"
	if h.pingDB == nil {
		dbStatus = "not configured"
	} else if err := h.pingDB(c.Request().Context()); err != nil {
		dbStatus = "unavailable"
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "TruthScope Analysis Backend",
		"model":    h.modelName,
		"database": dbStatus,
	})
}
