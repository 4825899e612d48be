package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sujayx07/TruthScope/internal/domain"
)

// HeadlineReport is one top-headlines entry annotated with fact-check
// records for its title. FactCheckError notes a failed annotation without
// failing the whole feed.
type HeadlineReport struct {
	Title          string                   `json:"title"`
	Source         string                   `json:"source"`
	URL            string                   `json:"url"`
	FactCheck      []domain.FactCheckRecord `json:"fact_check"`
	FactCheckError string                   `json:"fact_check_error,omitempty"`
}

// TopHeadlinesUsecase fetches top headlines and fact-checks each title.
type TopHeadlinesUsecase interface {
	Execute(ctx context.Context, query, category string) ([]HeadlineReport, error)
}

type topHeadlinesUsecase struct {
	news      domain.NewsClient
	factCheck domain.FactCheckClient
	logger    *slog.Logger
}

func NewTopHeadlinesUsecase(news domain.NewsClient, factCheck domain.FactCheckClient, logger *slog.Logger) TopHeadlinesUsecase {
	return &topHeadlinesUsecase{
		news:      news,
		factCheck: factCheck,
		logger:    logger,
	}
}

func (u *topHeadlinesUsecase) Execute(ctx context.Context, query, category string) ([]HeadlineReport, error) {
	headlines, err := u.news.TopHeadlines(ctx, query, category)
	if err != nil {
		return nil, err
	}

	reports := make([]HeadlineReport, len(headlines))

	// Headlines are independent; annotate them concurrently. A failed
	// fact-check marks its own entry only.
	g, gctx := errgroup.WithContext(ctx)
	for i, headline := range headlines {
		i, headline := i, headline
		g.Go(func() error {
			report := HeadlineReport{
				Title:     headline.Title,
				Source:    headline.Source,
				URL:       headline.URL,
				FactCheck: []domain.FactCheckRecord{},
			}
			records, err := u.factCheck.CheckClaims(gctx, []string{headline.Title})
			if err != nil {
				u.logger.Warn("headline fact check failed", "title", headline.Title, "error", err)
				report.FactCheckError = "fact check unavailable"
			} else {
				report.FactCheck = records
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
