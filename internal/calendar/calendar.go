// Package calendar lays out daily contribution samples as a GitHub-style
// heatmap grid. Build is pure and deterministic; placeholder sample
// generation lives in Synthetic and is never mixed into the layout.
package calendar

import (
	"time"

	"github.com/mferrerdev/gitfolio/internal/domain"
)

// DateLayout is the key format of the samples map.
const DateLayout = "2006-01-02"

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Build lays out the last 52 weeks of samples relative to today. Samples are
// keyed by ISO date (DateLayout); days without a sample count as zero. Given
// identical inputs the returned grid is identical on every call.
func Build(samples map[string]int, today time.Time) domain.CalendarGrid {
	today = midnight(today)

	// Range covers the 364 days before today, widened outward to whole
	// Sunday-through-Saturday columns.
	rangeEnd := today
	for rangeEnd.Weekday() != time.Sunday {
		rangeEnd = rangeEnd.AddDate(0, 0, 1)
	}
	rangeStart := today.AddDate(0, 0, -364)
	for rangeStart.Weekday() != time.Sunday {
		rangeStart = rangeStart.AddDate(0, 0, -1)
	}

	grid := domain.CalendarGrid{
		Weeks:       []domain.ContributionWeek{},
		MonthLabels: []domain.MonthLabel{},
	}

	currentWeek := make([]domain.ContributionDay, 0, 7)
	weekIndex := 0
	lastMonth := time.Month(0)

	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		// Label the column where a new month's Sunday begins. Week 0 is
		// never labeled so the label row cannot overflow the grid edge.
		if month := day.Month(); month != lastMonth && day.Weekday() == time.Sunday && weekIndex > 0 {
			grid.MonthLabels = append(grid.MonthLabels, domain.MonthLabel{
				Name:       monthNames[month-1],
				WeekOffset: weekIndex,
			})
			lastMonth = month
		}

		count := samples[day.Format(DateLayout)]
		grid.Total += count
		currentWeek = append(currentWeek, domain.ContributionDay{
			Date:  day,
			Count: count,
			Level: Level(count),
		})

		if day.Weekday() == time.Saturday {
			grid.Weeks = append(grid.Weeks, domain.ContributionWeek{Days: currentWeek})
			currentWeek = make([]domain.ContributionDay, 0, 7)
			weekIndex++
		}
	}

	if len(currentWeek) > 0 {
		grid.Weeks = append(grid.Weeks, domain.ContributionWeek{Days: currentWeek})
	}

	return grid
}

// Level buckets a daily count into the five heatmap intensities.
func Level(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 3:
		return 1
	case count <= 6:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
