package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// AnalyzeArticleInput carries one article through the pipeline.
type AnalyzeArticleInput struct {
	URL         string
	ArticleText string
}

// AnalyzeArticleUsecase runs the full evidence-gathering and
// verdict-synthesis pipeline for one article.
type AnalyzeArticleUsecase interface {
	Execute(ctx context.Context, input AnalyzeArticleInput) (*domain.Verdict, error)
}

type analyzeArticleUsecase struct {
	evidence      EvidencePort
	llm           domain.LLMClient
	promptBuilder PromptBuilder
	validator     OutputValidator
	results       domain.AnalysisResultRepository
	maxToolTurns  int
	logger        *slog.Logger
	now           func() time.Time
}

// NewAnalyzeArticleUsecase wires together the components of the analysis
// pipeline. maxToolTurns bounds the tool-calling loop so a misbehaving model
// cannot spin forever.
func NewAnalyzeArticleUsecase(
	evidence EvidencePort,
	llm domain.LLMClient,
	promptBuilder PromptBuilder,
	validator OutputValidator,
	results domain.AnalysisResultRepository,
	maxToolTurns int,
	logger *slog.Logger,
) AnalyzeArticleUsecase {
	return &analyzeArticleUsecase{
		evidence:      evidence,
		llm:           llm,
		promptBuilder: promptBuilder,
		validator:     validator,
		results:       results,
		maxToolTurns:  maxToolTurns,
		logger:        logger,
		now:           time.Now,
	}
}

func (u *analyzeArticleUsecase) Execute(ctx context.Context, input AnalyzeArticleInput) (*domain.Verdict, error) {
	if strings.TrimSpace(input.URL) == "" || strings.TrimSpace(input.ArticleText) == "" {
		return nil, fmt.Errorf("url and article text are required")
	}

	analysisID := uuid.NewString()
	log := u.logger.With("analysis_id", analysisID, "url", input.URL)

	// The reputation lookup always happens first, before the model is
	// engaged. A store fault is a hard stop for this analysis.
	domainVerdict, err := u.evidence.LookupDomain(ctx, input.URL)
	if err != nil {
		return nil, err
	}

	if verdict, done := u.shortCircuit(ctx, input.URL, domainVerdict, log); done {
		return verdict, nil
	}

	verdict, err := u.runToolLoop(ctx, input, domainVerdict, log)
	if err != nil {
		return nil, err
	}

	u.persist(ctx, input.URL, verdict, log)
	return verdict, nil
}

// shortCircuit handles the two deterministic edge cases that bypass the model
// and both collaborators entirely.
func (u *analyzeArticleUsecase) shortCircuit(ctx context.Context, url string, domainVerdict domain.DomainVerdict, log *slog.Logger) (*domain.Verdict, bool) {
	switch {
	case domainVerdict == domain.DomainVerdictInvalidURL:
		log.Info("short-circuit: invalid url")
		verdict := domain.InvalidURLVerdict()
		u.persist(ctx, url, verdict, log)
		return verdict, true

	case domainVerdict == domain.DomainVerdictNotFound:
		dom, ok := domain.ExtractDomain(url)
		if ok && domain.IsNonNewsDomain(dom) {
			log.Info("short-circuit: non-news domain", "domain", dom)
			verdict := domain.OutOfScopeVerdict()
			u.persist(ctx, url, verdict, log)
			return verdict, true
		}
	}
	return nil, false
}

// runToolLoop drives the model's tool-calling conversation: dispatch every
// requested call, feed results back, and stop at the first final text turn.
func (u *analyzeArticleUsecase) runToolLoop(ctx context.Context, input AnalyzeArticleInput, domainVerdict domain.DomainVerdict, log *slog.Logger) (*domain.Verdict, error) {
	dispatcher := newToolDispatcher(u.evidence, domainVerdict, log)
	system := u.promptBuilder.System(u.now())
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Text: u.promptBuilder.Article(input.URL, input.ArticleText)},
	}

	for turn := 0; turn < u.maxToolTurns; turn++ {
		modelTurn, err := u.llm.Chat(ctx, system, history)
		if err != nil {
			return nil, err
		}

		if len(modelTurn.Calls) > 0 {
			log.Info("dispatching tool calls", "turn", turn, "calls", len(modelTurn.Calls))
			results, err := dispatcher.Dispatch(ctx, modelTurn.Calls)
			if err != nil {
				return nil, err
			}
			history = append(history,
				domain.ChatMessage{Role: domain.RoleModel, Calls: modelTurn.Calls, Text: modelTurn.Text},
				domain.ChatMessage{Role: domain.RoleTool, Results: results},
			)
			continue
		}

		verdict, err := u.validator.Validate(modelTurn.Text)
		if err != nil {
			log.Error("model output failed validation", "error", err)
			return nil, err
		}

		bundle := dispatcher.Bundle()
		log.Info("analysis complete",
			"label", verdict.Label,
			"score", verdict.Score,
			"search_results", len(bundle.SearchResults),
			"fact_checks", len(bundle.FactChecks),
			"tool_errors", len(bundle.ToolErrors),
		)
		return verdict, nil
	}

	return nil, &domain.APIError{
		Collaborator: "model",
		Message:      fmt.Sprintf("no final answer after %d tool turns", u.maxToolTurns),
	}
}

// persist upserts the verdict into the result cache. A cache-write failure is
// logged but does not invalidate a successful analysis.
func (u *analyzeArticleUsecase) persist(ctx context.Context, url string, verdict *domain.Verdict, log *slog.Logger) {
	if err := u.results.Upsert(ctx, url, verdict); err != nil {
		log.Error("failed to store analysis result", "error", err)
	}
}
