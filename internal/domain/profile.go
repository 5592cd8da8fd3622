// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ContributorRecord is one row of a repository contributor list or an
// organization member list. Slice order follows the API return order, which
// callers rely on for stable index-based lookups.
type ContributorRecord struct {
	Login               string `json:"login"`
	AvatarURL           string `json:"avatar_url"`
	HTMLURL             string `json:"html_url"`
	ContributionsToRepo int    `json:"contributions"`
	Type                string `json:"type"`
}

// ExternalUserDetail is optional per-user enrichment. Every field defaults to
// its zero value when the upstream detail call is unavailable.
type ExternalUserDetail struct {
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Blog            string    `json:"blog"`
	TwitterUsername string    `json:"twitter_username"`
	Hireable        bool      `json:"hireable"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	CreatedAt       time.Time `json:"created_at"`
}

// RepositorySummary describes a single repository of a user or organization.
type RepositorySummary struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stargazers  int       `json:"stargazers_count"`
	ForksCount  int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []string  `json:"topics"`
	IsFork      bool      `json:"fork"`
}

// LanguageStat is one entry of a ranked language distribution. Count carries
// the ranking metric (bytes or repository count depending on the reducer form).
type LanguageStat struct {
	Language   string  `json:"language"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AggregatedProfile is the full landing-page aggregate for one contributor.
// It is built once per request and never mutated afterwards.
type AggregatedProfile struct {
	Contributor  ContributorRecord   `json:"contributor"`
	Detail       ExternalUserDetail  `json:"detail"`
	Repositories []RepositorySummary `json:"repositories"`
	Languages    []LanguageStat      `json:"languages"`
}

// OrganizationDetail is the enrichment record for an organization.
type OrganizationDetail struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Blog        string    `json:"blog"`
	Location    string    `json:"location"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamSummary is one visible team of an organization.
type TeamSummary struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// WeeklyCommits is one week of a repository commit-activity series.
type WeeklyCommits struct {
	Week  time.Time `json:"week"`
	Total int       `json:"total"`
	Days  []int     `json:"days"`
}

// RepositoryActivity pairs a repository with its commit-activity series and
// a few derived figures.
type RepositoryActivity struct {
	Name            string          `json:"name"`
	Weeks           []WeeklyCommits `json:"weeks"`
	TotalCommits    int             `json:"total_commits"`
	LastWeekCommits int             `json:"last_week_commits"`
	MeanWeekly      float64         `json:"mean_weekly"`
	MedianWeekly    float64         `json:"median_weekly"`
}

// AggregatedOrganization is the digest built for an organization view.
type AggregatedOrganization struct {
	Detail       OrganizationDetail   `json:"detail"`
	Members      []ContributorRecord  `json:"members"`
	Repositories []RepositorySummary  `json:"repositories"`
	Teams        []TeamSummary        `json:"teams"`
	Activity     []RepositoryActivity `json:"activity"`
}

// SeedProfile is a locally seeded profile row, shaped like the CSV fallback
// file with its fixed column order.
type SeedProfile struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	PhotoURL string `json:"photo_url"`
	Username string `json:"username"`
}
