package usecase

import (
	"math"
	"sort"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

// Bounds for the two reducer forms.
const (
	topLanguagesByBytes   = 8
	topLanguagesByPrimary = 5
)

// LanguagePair carries the per-repository language byte counts fetched for
// one repository. Bytes is nil when the fetch for that repository failed.
type LanguagePair struct {
	RepoName string
	Bytes    map[string]int
}

// ReduceByBytes combines per-repository byte counts into a ranked
// distribution: total bytes per language, percentage of the grand total
// rounded to one decimal, descending by bytes, capped to the top eight.
// Returns an empty slice when no repository contributed any bytes.
func ReduceByBytes(pairs []LanguagePair) []domain.LanguageStat {
	totals := make(map[string]int)
	order := []string{}
	grandTotal := 0

	for _, pair := range pairs {
		// Iterate each repository's map in name order so that first-seen
		// ranking is reproducible across runs.
		names := make([]string, 0, len(pair.Bytes))
		for name := range pair.Bytes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, seen := totals[name]; !seen {
				order = append(order, name)
			}
			totals[name] += pair.Bytes[name]
			grandTotal += pair.Bytes[name]
		}
	}
	if grandTotal == 0 {
		return []domain.LanguageStat{}
	}

	ranked := make([]domain.LanguageStat, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, domain.LanguageStat{
			Language:   name,
			Count:      totals[name],
			Percentage: math.Round(float64(totals[name])/float64(grandTotal)*1000) / 10,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topLanguagesByBytes {
		ranked = ranked[:topLanguagesByBytes]
	}
	return ranked
}

// ReduceByPrimary is the coarse fallback used when only each repository's
// primary language string is known: one count per repository, integer
// percentages of the repositories that declare a language, descending by
// count with first-seen order breaking ties, capped to the top five.
func ReduceByPrimary(repos []domain.RepositorySummary) []domain.LanguageStat {
	counts := make(map[string]int)
	order := []string{}
	withLanguage := 0

	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, seen := counts[repo.Language]; !seen {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
		withLanguage++
	}
	if withLanguage == 0 {
		return []domain.LanguageStat{}
	}

	ranked := make([]domain.LanguageStat, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, domain.LanguageStat{
			Language:   name,
			Count:      counts[name],
			Percentage: math.Round(float64(counts[name]) / float64(withLanguage) * 100),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topLanguagesByPrimary {
		ranked = ranked[:topLanguagesByPrimary]
	}
	return ranked
}
