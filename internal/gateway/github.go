// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching profile and
// organization data from GitHub.
type Fetcher interface {
	FetchContributors(ctx context.Context, owner, repo string) ([]domain.ContributorRecord, error)
	FetchUserDetail(ctx context.Context, login string) (domain.ExternalUserDetail, error)
	FetchUserRepositories(ctx context.Context, login string) ([]domain.RepositorySummary, error)
	FetchRepositoryLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	FetchOrganizationDetail(ctx context.Context, org string) (domain.OrganizationDetail, error)
	FetchOrganizationMembers(ctx context.Context, org string) ([]domain.ContributorRecord, error)
	FetchOrganizationRepositories(ctx context.Context, org string) ([]domain.RepositorySummary, error)
	FetchOrganizationTeams(ctx context.Context, org string) ([]domain.TeamSummary, error)
	FetchCommitActivity(ctx context.Context, owner, repo string) ([]domain.WeeklyCommits, error)
	FetchContributionDays(ctx context.Context, login string, from, to time.Time) (map[string]int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// NewGitHubGateway creates a gateway whose HTTP client waits out secondary
// rate limits and injects the token on every call to the API host. An empty
// token leaves requests unauthenticated.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{Transport: rateLimitWaiter, Timeout: 30 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
			Timeout: 30 * time.Second,
		}
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// classifyError maps client errors onto the domain error taxonomy so the
// aggregation layer can apply its hard/soft failure policy without knowing
// anything about HTTP.
func classifyError(err error) error {
	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var responseErr *github.ErrorResponse
	switch {
	case errors.As(err, &rateLimitErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	case errors.As(err, &responseErr):
		if responseErr.Response != nil {
			switch responseErr.Response.StatusCode {
			case http.StatusNotFound:
				return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
			case http.StatusForbidden, http.StatusTooManyRequests:
				return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
			}
			if responseErr.Response.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
}

func (g *GitHubGateway) FetchContributors(ctx context.Context, owner, repo string) ([]domain.ContributorRecord, error) {
	g.logger.Printf("Fetching contributors for %s/%s...", owner, repo)
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	contributors, _, err := g.restClient.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return nil, classifyError(err)
	}
	records := make([]domain.ContributorRecord, 0, len(contributors))
	for _, c := range contributors {
		records = append(records, domain.ContributorRecord{
			Login:               c.GetLogin(),
			AvatarURL:           c.GetAvatarURL(),
			HTMLURL:             c.GetHTMLURL(),
			ContributionsToRepo: c.GetContributions(),
			Type:                c.GetType(),
		})
	}
	return records, nil
}

func (g *GitHubGateway) FetchUserDetail(ctx context.Context, login string) (domain.ExternalUserDetail, error) {
	g.logger.Printf("Fetching user detail for %s...", login)
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		return domain.ExternalUserDetail{}, classifyError(err)
	}
	return domain.ExternalUserDetail{
		Name:            user.GetName(),
		Bio:             user.GetBio(),
		Company:         user.GetCompany(),
		Location:        user.GetLocation(),
		Blog:            user.GetBlog(),
		TwitterUsername: user.GetTwitterUsername(),
		Hireable:        user.GetHireable(),
		PublicRepos:     user.GetPublicRepos(),
		Followers:       user.GetFollowers(),
		CreatedAt:       user.GetCreatedAt().Time,
	}, nil
}

func (g *GitHubGateway) FetchUserRepositories(ctx context.Context, login string) ([]domain.RepositorySummary, error) {
	g.logger.Printf("Fetching repositories for user %s...", login)
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return nil, classifyError(err)
	}
	return toRepositorySummaries(repos), nil
}

func (g *GitHubGateway) FetchRepositoryLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, classifyError(err)
	}
	return languages, nil
}

func (g *GitHubGateway) FetchOrganizationDetail(ctx context.Context, org string) (domain.OrganizationDetail, error) {
	g.logger.Printf("Fetching organization detail for %s...", org)
	o, _, err := g.restClient.Organizations.Get(ctx, org)
	if err != nil {
		return domain.OrganizationDetail{}, classifyError(err)
	}
	return domain.OrganizationDetail{
		Login:       o.GetLogin(),
		Name:        o.GetName(),
		Description: o.GetDescription(),
		Blog:        o.GetBlog(),
		Location:    o.GetLocation(),
		AvatarURL:   o.GetAvatarURL(),
		HTMLURL:     o.GetHTMLURL(),
		PublicRepos: o.GetPublicRepos(),
		Followers:   o.GetFollowers(),
		CreatedAt:   o.GetCreatedAt().Time,
	}, nil
}

func (g *GitHubGateway) FetchOrganizationMembers(ctx context.Context, org string) ([]domain.ContributorRecord, error) {
	g.logger.Printf("Fetching public members for organization %s...", org)
	opts := &github.ListMembersOptions{
		PublicOnly:  true,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	members, _, err := g.restClient.Organizations.ListMembers(ctx, org, opts)
	if err != nil {
		return nil, classifyError(err)
	}
	records := make([]domain.ContributorRecord, 0, len(members))
	for _, m := range members {
		records = append(records, domain.ContributorRecord{
			Login:     m.GetLogin(),
			AvatarURL: m.GetAvatarURL(),
			HTMLURL:   m.GetHTMLURL(),
			Type:      m.GetType(),
		})
	}
	return records, nil
}

func (g *GitHubGateway) FetchOrganizationRepositories(ctx context.Context, org string) ([]domain.RepositorySummary, error) {
	g.logger.Printf("Fetching repositories for organization %s...", org)
	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: 100}}
	repos, _, err := g.restClient.Repositories.ListByOrg(ctx, org, opts)
	if err != nil {
		return nil, classifyError(err)
	}
	return toRepositorySummaries(repos), nil
}

func (g *GitHubGateway) FetchOrganizationTeams(ctx context.Context, org string) ([]domain.TeamSummary, error) {
	teams, _, err := g.restClient.Teams.ListTeams(ctx, org, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, classifyError(err)
	}
	summaries := make([]domain.TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, domain.TeamSummary{
			Name:        t.GetName(),
			Slug:        t.GetSlug(),
			Description: t.GetDescription(),
		})
	}
	return summaries, nil
}

func (g *GitHubGateway) FetchCommitActivity(ctx context.Context, owner, repo string) ([]domain.WeeklyCommits, error) {
	activity, _, err := g.restClient.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		// GitHub answers 202 while it computes the statistics in the
		// background; the series simply is not available yet.
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return nil, fmt.Errorf("%w: commit activity not yet computed", domain.ErrNetwork)
		}
		return nil, classifyError(err)
	}
	weeks := make([]domain.WeeklyCommits, 0, len(activity))
	for _, w := range activity {
		weeks = append(weeks, domain.WeeklyCommits{
			Week:  w.GetWeek().Time,
			Total: w.GetTotal(),
			Days:  w.Days,
		})
	}
	return weeks, nil
}

// contributionsQuery pulls the daily contribution calendar for a user. The
// calendar is only exposed through the GraphQL API.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
				Weeks              []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// FetchContributionDays returns a map of ISO date (2006-01-02) to
// contribution count for the given window.
func (g *GitHubGateway) FetchContributionDays(ctx context.Context, login string, from, to time.Time) (map[string]int, error) {
	g.logger.Printf("Fetching contribution calendar for %s...", login)
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}
	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, classifyError(err)
	}
	samples := make(map[string]int)
	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			samples[string(day.Date)] = int(day.ContributionCount)
		}
	}
	return samples, nil
}

func toRepositorySummaries(repos []*github.Repository) []domain.RepositorySummary {
	summaries := make([]domain.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		summaries = append(summaries, domain.RepositorySummary{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stargazers:  r.GetStargazersCount(),
			ForksCount:  r.GetForksCount(),
			UpdatedAt:   r.GetUpdatedAt().Time,
			Topics:      r.Topics,
			IsFork:      r.GetFork(),
		})
	}
	return summaries
}
