package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/usecase"
)

// stubFetcher serves canned data for the routes under test.
type stubFetcher struct {
	contributors []domain.ContributorRecord
	contribErr   error
}

func (s *stubFetcher) FetchContributors(ctx context.Context, owner, repo string) ([]domain.ContributorRecord, error) {
	return s.contributors, s.contribErr
}

func (s *stubFetcher) FetchUserDetail(ctx context.Context, login string) (domain.ExternalUserDetail, error) {
	return domain.ExternalUserDetail{Bio: "gopher"}, nil
}

func (s *stubFetcher) FetchUserRepositories(ctx context.Context, login string) ([]domain.RepositorySummary, error) {
	return []domain.RepositorySummary{{Name: "lib", Language: "Go"}}, nil
}

func (s *stubFetcher) FetchRepositoryLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	return map[string]int{"Go": 100}, nil
}

func (s *stubFetcher) FetchOrganizationDetail(ctx context.Context, org string) (domain.OrganizationDetail, error) {
	return domain.OrganizationDetail{Login: org}, nil
}

func (s *stubFetcher) FetchOrganizationMembers(ctx context.Context, org string) ([]domain.ContributorRecord, error) {
	return []domain.ContributorRecord{{Login: "alice"}}, nil
}

func (s *stubFetcher) FetchOrganizationRepositories(ctx context.Context, org string) ([]domain.RepositorySummary, error) {
	return []domain.RepositorySummary{}, nil
}

func (s *stubFetcher) FetchOrganizationTeams(ctx context.Context, org string) ([]domain.TeamSummary, error) {
	return []domain.TeamSummary{}, nil
}

func (s *stubFetcher) FetchCommitActivity(ctx context.Context, owner, repo string) ([]domain.WeeklyCommits, error) {
	return []domain.WeeklyCommits{}, nil
}

func (s *stubFetcher) FetchContributionDays(ctx context.Context, login string, from, to time.Time) (map[string]int, error) {
	return map[string]int{}, nil
}

func setupRouter(fetcher *stubFetcher, seeds []domain.SeedProfile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	aggregator := usecase.NewAggregator(fetcher, logger, usecase.DefaultFanoutLimit)
	return NewRouter(NewHandler(aggregator, seeds, logger))
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	fetcher := &stubFetcher{contributors: []domain.ContributorRecord{{Login: "alice", ContributionsToRepo: 10}}}
	router := setupRouter(fetcher, nil)

	t.Run("happy path", func(t *testing.T) {
		w := doRequest(router, "/api/v1/profiles?url=https://github.com/acme/widget&index=0")
		require.Equal(t, http.StatusOK, w.Code)

		var profile domain.AggregatedProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, "alice", profile.Contributor.Login)
		assert.Equal(t, "gopher", profile.Detail.Bio)
	})

	t.Run("org URL is rejected", func(t *testing.T) {
		w := doRequest(router, "/api/v1/profiles?url=https://github.com/acme")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing URL is rejected", func(t *testing.T) {
		w := doRequest(router, "/api/v1/profiles")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("index out of range", func(t *testing.T) {
		w := doRequest(router, "/api/v1/profiles?url=https://github.com/acme/widget&index=5")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetProfile_UpstreamNotFound(t *testing.T) {
	fetcher := &stubFetcher{contribErr: domain.ErrNotFound}
	router := setupRouter(fetcher, nil)

	w := doRequest(router, "/api/v1/profiles?url=https://github.com/acme/widget")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProfileCV(t *testing.T) {
	fetcher := &stubFetcher{contributors: []domain.ContributorRecord{{Login: "alice"}}}
	router := setupRouter(fetcher, nil)

	w := doRequest(router, "/api/v1/profiles/cv?url=https://github.com/acme/widget")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "CV - alice")
}

func TestGetOrganization(t *testing.T) {
	router := setupRouter(&stubFetcher{}, nil)

	w := doRequest(router, "/api/v1/orgs/acme")
	require.Equal(t, http.StatusOK, w.Code)

	var digest domain.AggregatedOrganization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &digest))
	assert.Equal(t, "acme", digest.Detail.Login)
	assert.Len(t, digest.Members, 1)
}

func TestGetCalendar_Synthetic(t *testing.T) {
	router := setupRouter(&stubFetcher{}, nil)

	w := doRequest(router, "/api/v1/users/octocat/calendar?synthetic=true")
	require.Equal(t, http.StatusOK, w.Code)

	var grid domain.CalendarGrid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.GreaterOrEqual(t, len(grid.Weeks), 53)
	assert.LessOrEqual(t, len(grid.Weeks), 54)
}

func TestGetLanding(t *testing.T) {
	seeds := []domain.SeedProfile{{Name: "Alice", Username: "alice"}}
	router := setupRouter(&stubFetcher{}, seeds)

	t.Run("known index", func(t *testing.T) {
		w := doRequest(router, "/api/v1/landing/0")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("unknown index", func(t *testing.T) {
		w := doRequest(router, "/api/v1/landing/9")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	router := setupRouter(&stubFetcher{}, nil)
	w := doRequest(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := setupRouter(&stubFetcher{}, nil)
	w := doRequest(router, "/healthz")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
