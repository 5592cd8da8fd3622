package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}

	return gateway, server
}

func TestGitHubGateway_FetchContributors(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
		expected    []domain.ContributorRecord
		expectedErr error
	}{
		{
			name: "happy path - list order is preserved",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.String(), "/repos/acme/widget/contributors")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[
					{"login":"alice","avatar_url":"https://a.example/alice","html_url":"https://github.com/alice","contributions":10,"type":"User"},
					{"login":"bob","contributions":3,"type":"User"}
				]`)
			},
			expected: []domain.ContributorRecord{
				{Login: "alice", AvatarURL: "https://a.example/alice", HTMLURL: "https://github.com/alice", ContributionsToRepo: 10, Type: "User"},
				{Login: "bob", ContributionsToRepo: 3, Type: "User"},
			},
		},
		{
			name: "404 maps to ErrNotFound",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name: "403 maps to ErrRateLimited",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			},
			expectedErr: domain.ErrRateLimited,
		},
		{
			name: "500 maps to ErrNetwork",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "boom"}`)
			},
			expectedErr: domain.ErrNetwork,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			records, err := gateway.FetchContributors(context.Background(), "acme", "widget")
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, records)
			}
		})
	}
}

func TestGitHubGateway_FetchUserDetail(t *testing.T) {
	created := time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC)
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/users/octocat")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","bio":"Hi there!","company":"@github",
			"location":"San Francisco","blog":"https://github.blog","twitter_username":"githuboctocat",
			"hireable":true,"public_repos":8,"followers":5234,"created_at":"2011-01-25T18:44:36Z"}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	detail, err := gateway.FetchUserDetail(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, domain.ExternalUserDetail{
		Name:            "The Octocat",
		Bio:             "Hi there!",
		Company:         "@github",
		Location:        "San Francisco",
		Blog:            "https://github.blog",
		TwitterUsername: "githuboctocat",
		Hireable:        true,
		PublicRepos:     8,
		Followers:       5234,
		CreatedAt:       created,
	}, detail)
}

func TestGitHubGateway_FetchRepositoryLanguages(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/repos/acme/widget/languages")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"Go": 12345, "Makefile": 120}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	languages, err := gateway.FetchRepositoryLanguages(context.Background(), "acme", "widget")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 12345, "Makefile": 120}, languages)
}

func TestGitHubGateway_FetchOrganizationMembers(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/orgs/acme/public_members")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[{"login":"alice","type":"User"}]`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	members, err := gateway.FetchOrganizationMembers(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []domain.ContributorRecord{{Login: "alice", Type: "User"}}, members)
}

func TestGitHubGateway_FetchCommitActivity(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.String(), "/repos/acme/widget/stats/commit_activity")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `[{"total":5,"week":1710028800,"days":[0,1,2,0,1,1,0]}]`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		weeks, err := gateway.FetchCommitActivity(context.Background(), "acme", "widget")
		require.NoError(t, err)
		require.Len(t, weeks, 1)
		assert.Equal(t, 5, weeks[0].Total)
		assert.Equal(t, []int{0, 1, 2, 0, 1, 1, 0}, weeks[0].Days)
	})

	t.Run("202 while stats are computed maps to ErrNetwork", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		_, err := gateway.FetchCommitActivity(context.Background(), "acme", "widget")
		assert.ErrorIs(t, err, domain.ErrNetwork)
	})
}

func TestGitHubGateway_FetchContributionDays(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "contributionsCollection")

			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
				"totalContributions":7,
				"weeks":[{"contributionDays":[
					{"date":"2024-03-13","contributionCount":2},
					{"date":"2024-03-14","contributionCount":5}
				]}]}}}}}`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		samples, err := gateway.FetchContributionDays(context.Background(), "octocat", from, to)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"2024-03-13": 2, "2024-03-14": 5}, samples)
	})

	t.Run("GraphQL error", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, `{"errors":[{"message":"Something went wrong"}]}`)
		}
		gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
		defer server.Close()

		_, err := gateway.FetchContributionDays(context.Background(), "octocat", time.Now().AddDate(0, 0, -7), time.Now())
		assert.Error(t, err)
	})
}
