package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujayx07/TruthScope/internal/domain"
)

type stubNewsClient struct {
	headlines []domain.Headline
	err       error
}

func (s *stubNewsClient) TopHeadlines(context.Context, string, string) ([]domain.Headline, error) {
	return s.headlines, s.err
}

type stubFactCheckClient struct {
	records  []domain.FactCheckRecord
	failFor  string
	failWith error
}

func (s *stubFactCheckClient) CheckClaims(_ context.Context, claims []string) ([]domain.FactCheckRecord, error) {
	if len(claims) == 1 && claims[0] == s.failFor {
		return nil, s.failWith
	}
	return s.records, nil
}

func TestTopHeadlines_AnnotatesEachHeadline(t *testing.T) {
	news := &stubNewsClient{headlines: []domain.Headline{
		{Title: "first story", Source: "Reuters", URL: "https://a.example.com"},
		{Title: "second story", Source: "AP", URL: "https://b.example.com"},
	}}
	factCheck := &stubFactCheckClient{
		records: []domain.FactCheckRecord{{Source: "Snopes", ReviewRating: "True"}},
	}
	uc := NewTopHeadlinesUsecase(news, factCheck, testLogger())

	reports, err := uc.Execute(context.Background(), "news", "general")
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "first story", reports[0].Title)
	assert.Equal(t, "Reuters", reports[0].Source)
	assert.Len(t, reports[0].FactCheck, 1)
	assert.Empty(t, reports[0].FactCheckError)
	assert.Len(t, reports[1].FactCheck, 1)
}

func TestTopHeadlines_FactCheckFailureMarksOnlyItsEntry(t *testing.T) {
	news := &stubNewsClient{headlines: []domain.Headline{
		{Title: "fine story", Source: "Reuters", URL: "https://a.example.com"},
		{Title: "broken story", Source: "AP", URL: "https://b.example.com"},
	}}
	factCheck := &stubFactCheckClient{
		records:  []domain.FactCheckRecord{{Source: "Snopes"}},
		failFor:  "broken story",
		failWith: &domain.APIError{Collaborator: "fact-check", Message: "unavailable"},
	}
	uc := NewTopHeadlinesUsecase(news, factCheck, testLogger())

	reports, err := uc.Execute(context.Background(), "news", "general")
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Empty(t, reports[0].FactCheckError)
	assert.Len(t, reports[0].FactCheck, 1)

	assert.Equal(t, "fact check unavailable", reports[1].FactCheckError)
	assert.Empty(t, reports[1].FactCheck)
	assert.NotNil(t, reports[1].FactCheck, "fact_check must serialize as an array")
}

func TestTopHeadlines_NewsFailurePropagates(t *testing.T) {
	news := &stubNewsClient{err: &domain.APIError{Collaborator: "news", Message: "quota exceeded"}}
	uc := NewTopHeadlinesUsecase(news, &stubFactCheckClient{}, testLogger())

	_, err := uc.Execute(context.Background(), "news", "general")
	require.Error(t, err)

	var apiErr *domain.APIError
	assert.True(t, errors.As(err, &apiErr))
}
