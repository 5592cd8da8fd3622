// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mferrerdev/gitfolio/internal/calendar"
	"github.com/mferrerdev/gitfolio/internal/domain"
	"github.com/mferrerdev/gitfolio/internal/gateway"
	"github.com/mferrerdev/gitfolio/internal/reference"

	"github.com/montanaflynn/stats"
)

// DefaultFanoutLimit caps concurrent per-repository fetches. It matches the
// top-10 truncations applied to the fetched lists.
const DefaultFanoutLimit = 10

// activityRepoLimit bounds how many repositories get a commit-activity series
// in an organization digest.
const activityRepoLimit = 10

// Aggregator is the use case for assembling contributor profiles and
// organization digests. It orchestrates the fetching and combining of data.
//
// Identity-establishing calls (contributor list, public member list) fail the
// whole operation; enrichment calls degrade to their zero values and are only
// logged.
type Aggregator struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	fanoutLimit int
}

// NewAggregator creates a new Aggregator instance. A fanoutLimit below one
// falls back to DefaultFanoutLimit.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, fanoutLimit int) *Aggregator {
	if fanoutLimit < 1 {
		fanoutLimit = DefaultFanoutLimit
	}
	return &Aggregator{
		fetcher:     fetcher,
		logger:      logger,
		fanoutLimit: fanoutLimit,
	}
}

// AggregateProfile builds the landing-page aggregate for the contributor at
// the given index of the referenced repository's contributor list.
func (a *Aggregator) AggregateProfile(ctx context.Context, ref reference.RepoReference, contributorIndex int) (*domain.AggregatedProfile, error) {
	a.logger.Printf("Usecase: aggregating profile for %s/%s[%d]...", ref.Owner, ref.Repo, contributorIndex)

	contributors, err := a.fetcher.FetchContributors(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributors: %w", err)
	}
	if contributorIndex < 0 || contributorIndex >= len(contributors) {
		return nil, fmt.Errorf("%w: index %d, list length %d", domain.ErrIndexOutOfRange, contributorIndex, len(contributors))
	}
	subject := contributors[contributorIndex]

	profile := &domain.AggregatedProfile{
		Contributor:  subject,
		Repositories: []domain.RepositorySummary{},
		Languages:    []domain.LanguageStat{},
	}

	// Three enrichment branches. Each swallows its own failure so that one
	// flaky endpoint cannot take the page down.
	var detail domain.ExternalUserDetail
	var repos []domain.RepositorySummary
	var languagePairs []LanguagePair

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		d, err := a.fetcher.FetchUserDetail(egCtx, subject.Login)
		if err != nil {
			a.logger.Printf("Usecase: user detail degraded to empty: %v", err)
			return nil
		}
		detail = d
		return nil
	})

	eg.Go(func() error {
		list, err := a.fetcher.FetchUserRepositories(egCtx, subject.Login)
		if err != nil {
			a.logger.Printf("Usecase: repository list degraded to empty: %v", err)
			return nil
		}
		repos = list
		languagePairs = a.fetchLanguagePairs(egCtx, subject.Login, list)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	profile.Detail = detail
	if repos != nil {
		profile.Repositories = repos
	}
	profile.Languages = ReduceByBytes(languagePairs)
	if len(profile.Languages) == 0 {
		profile.Languages = ReduceByPrimary(profile.Repositories)
	}

	a.logger.Printf("Usecase: profile for %s assembled.", subject.Login)
	return profile, nil
}

// fetchLanguagePairs fans out one languages call per non-fork repository,
// bounded by the fan-out limit. A failed call leaves a nil map for that one
// repository and never affects siblings, so the group error is always nil.
func (a *Aggregator) fetchLanguagePairs(ctx context.Context, login string, repos []domain.RepositorySummary) []LanguagePair {
	targets := make([]domain.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		if !r.IsFork {
			targets = append(targets, r)
		}
	}

	pairs := make([]LanguagePair, len(targets))
	eg := new(errgroup.Group)
	eg.SetLimit(a.fanoutLimit)
	for i, repo := range targets {
		i, repo := i, repo
		eg.Go(func() error {
			languages, err := a.fetcher.FetchRepositoryLanguages(ctx, login, repo.Name)
			if err != nil {
				a.logger.Printf("Usecase: languages for %s degraded to empty: %v", repo.Name, err)
				languages = nil
			}
			pairs[i] = LanguagePair{RepoName: repo.Name, Bytes: languages}
			return nil
		})
	}
	eg.Wait()
	return pairs
}

// AggregateOrganization builds the digest for an organization: detail,
// public members, repositories and teams in parallel, then commit activity
// for the most starred repositories.
func (a *Aggregator) AggregateOrganization(ctx context.Context, ref reference.OrgReference) (*domain.AggregatedOrganization, error) {
	a.logger.Printf("Usecase: aggregating organization %s...", ref.Org)

	org := &domain.AggregatedOrganization{
		Repositories: []domain.RepositorySummary{},
		Teams:        []domain.TeamSummary{},
		Activity:     []domain.RepositoryActivity{},
	}

	eg, egCtx := errgroup.WithContext(ctx)

	// The member list establishes identity: its failure aborts the whole
	// digest and cancels the sibling branches through the group context.
	eg.Go(func() error {
		members, err := a.fetcher.FetchOrganizationMembers(egCtx, ref.Org)
		if err != nil {
			return fmt.Errorf("failed to fetch organization members: %w", err)
		}
		org.Members = members
		return nil
	})

	eg.Go(func() error {
		detail, err := a.fetcher.FetchOrganizationDetail(egCtx, ref.Org)
		if err != nil {
			a.logger.Printf("Usecase: organization detail degraded to empty: %v", err)
			return nil
		}
		org.Detail = detail
		return nil
	})

	eg.Go(func() error {
		repos, err := a.fetcher.FetchOrganizationRepositories(egCtx, ref.Org)
		if err != nil {
			a.logger.Printf("Usecase: organization repositories degraded to empty: %v", err)
			return nil
		}
		org.Repositories = repos
		return nil
	})

	eg.Go(func() error {
		teams, err := a.fetcher.FetchOrganizationTeams(egCtx, ref.Org)
		if err != nil {
			a.logger.Printf("Usecase: organization teams degraded to empty: %v", err)
			return nil
		}
		org.Teams = teams
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	org.Activity = a.fetchActivity(ctx, ref.Org, topByStars(org.Repositories, activityRepoLimit))

	a.logger.Printf("Usecase: organization %s assembled.", ref.Org)
	return org, nil
}

// fetchActivity fans out commit-activity calls, bounded, each degrading to an
// empty series on failure.
func (a *Aggregator) fetchActivity(ctx context.Context, org string, repos []domain.RepositorySummary) []domain.RepositoryActivity {
	activities := make([]domain.RepositoryActivity, len(repos))
	eg := new(errgroup.Group)
	eg.SetLimit(a.fanoutLimit)
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			weeks, err := a.fetcher.FetchCommitActivity(ctx, org, repo.Name)
			if err != nil {
				a.logger.Printf("Usecase: commit activity for %s degraded to empty: %v", repo.Name, err)
				weeks = nil
			}
			activities[i] = summarizeActivity(repo.Name, weeks)
			return nil
		})
	}
	eg.Wait()
	return activities
}

// summarizeActivity derives total, last-week and mean/median weekly commit
// figures from a 52-week series.
func summarizeActivity(name string, weeks []domain.WeeklyCommits) domain.RepositoryActivity {
	activity := domain.RepositoryActivity{Name: name, Weeks: weeks}
	if len(weeks) == 0 {
		activity.Weeks = []domain.WeeklyCommits{}
		return activity
	}
	totals := make([]float64, 0, len(weeks))
	for _, w := range weeks {
		activity.TotalCommits += w.Total
		totals = append(totals, float64(w.Total))
	}
	activity.LastWeekCommits = weeks[len(weeks)-1].Total
	if mean, err := stats.Mean(totals); err == nil {
		activity.MeanWeekly = mean
	}
	if median, err := stats.Median(totals); err == nil {
		activity.MedianWeekly = median
	}
	return activity
}

// topByStars returns the n most starred repositories without mutating the
// input order.
func topByStars(repos []domain.RepositorySummary, n int) []domain.RepositorySummary {
	sorted := make([]domain.RepositorySummary, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stargazers > sorted[j].Stargazers
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// BuildUserCalendar fetches a year of daily contribution samples for the
// user and lays them out as a calendar grid. Callers that cannot reach the
// API may substitute calendar.Synthetic samples and call calendar.Build
// directly; no placeholder data is ever generated here.
func (a *Aggregator) BuildUserCalendar(ctx context.Context, login string, today time.Time) (*domain.CalendarGrid, error) {
	from := today.AddDate(0, 0, -364)
	samples, err := a.fetcher.FetchContributionDays(ctx, login, from, today)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contribution samples: %w", err)
	}
	grid := calendar.Build(samples, today)
	return &grid, nil
}
