// Package di wires adapters and usecases into the application graph.
package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujayx07/TruthScope/internal/adapter/factcheck"
	"github.com/sujayx07/TruthScope/internal/adapter/llm"
	"github.com/sujayx07/TruthScope/internal/adapter/newsapi"
	"github.com/sujayx07/TruthScope/internal/adapter/repository"
	"github.com/sujayx07/TruthScope/internal/adapter/search"
	"github.com/sujayx07/TruthScope/internal/domain"
	"github.com/sujayx07/TruthScope/internal/infra/config"
	"github.com/sujayx07/TruthScope/internal/infra/httpclient"
	"github.com/sujayx07/TruthScope/internal/usecase"
)

// claimLimit caps how many claims one fact-check batch carries. Mirrors the
// limit enforced by the fact-check adapter so the prompt and the adapter
// agree.
const claimLimit = 3

// ApplicationComponents holds everything the HTTP layer needs.
type ApplicationComponents struct {
	AnalyzeArticle usecase.AnalyzeArticleUsecase
	TopHeadlines   usecase.TopHeadlinesUsecase

	AnalysisResults domain.AnalysisResultRepository
	DomainVerdicts  domain.DomainVerdictRepository
	Users           domain.UserRepository

	ModelName string
}

// NewApplicationComponents builds the full dependency graph. Collaborator
// clients get separate pooled HTTP clients so a slow model call cannot starve
// the evidence tools of connections.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *ApplicationComponents {
	apiTimeout := time.Duration(cfg.APITimeout) * time.Second
	modelTimeout := time.Duration(cfg.GeminiTimeout) * time.Second

	searchClient := search.NewZenRowsClient(cfg.ZenRowsURL, cfg.ZenRowsAPIKey, httpclient.NewPooledClient(apiTimeout), logger)
	factCheckClient := factcheck.NewGoogleClient(cfg.FactCheckURL, cfg.FactCheckAPIKey, httpclient.NewPooledClient(apiTimeout), logger)
	newsClient := newsapi.NewClient(cfg.NewsAPIURL, cfg.NewsAPIKey, httpclient.NewPooledClient(apiTimeout))
	geminiClient := llm.NewGeminiClient(cfg.GeminiURL, cfg.GeminiAPIKey, cfg.GeminiModel, httpclient.NewPooledClient(modelTimeout))

	domainVerdicts := repository.NewCachedDomainVerdictRepository(
		repository.NewDomainVerdictRepository(pool),
		cfg.DomainCacheSize,
		time.Duration(cfg.DomainCacheTTL)*time.Minute,
	)
	analysisResults := repository.NewAnalysisResultRepository(pool)
	users := repository.NewUserRepository(pool)

	evidence := usecase.NewEvidenceService(domainVerdicts, searchClient, factCheckClient, logger)

	analyze := usecase.NewAnalyzeArticleUsecase(
		evidence,
		geminiClient,
		usecase.NewVerdictPromptBuilder(claimLimit),
		usecase.NewOutputValidator(),
		analysisResults,
		cfg.MaxToolTurns,
		logger,
	)
	headlines := usecase.NewTopHeadlinesUsecase(newsClient, factCheckClient, logger)

	return &ApplicationComponents{
		AnalyzeArticle:  analyze,
		TopHeadlines:    headlines,
		AnalysisResults: analysisResults,
		DomainVerdicts:  domainVerdicts,
		Users:           users,
		ModelName:       geminiClient.Version(),
	}
}
