package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujayx07/TruthScope/internal/domain"
)

func TestClient_TopHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tech", r.URL.Query().Get("q"))
		assert.Equal(t, "technology", r.URL.Query().Get("category"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "key-123", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(`{"articles": [
			{"title": "Story A", "url": "https://a.com", "source": {"name": "Reuters"}},
			{"title": "Story B", "url": "https://b.com", "source": {"name": "AP"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123", server.Client())

	headlines, err := client.TopHeadlines(context.Background(), "tech", "technology")
	require.NoError(t, err)
	require.Len(t, headlines, 2)
	assert.Equal(t, "Story A", headlines[0].Title)
	assert.Equal(t, "Reuters", headlines[0].Source)
	assert.Equal(t, "https://b.com", headlines[1].URL)
}

func TestClient_MissingKey(t *testing.T) {
	client := NewClient("http://unused", "", nil)

	_, err := client.TopHeadlines(context.Background(), "q", "general")

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "NEWS_API_KEY", cfgErr.Setting)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key-123", server.Client())

	_, err := client.TopHeadlines(context.Background(), "q", "general")

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
