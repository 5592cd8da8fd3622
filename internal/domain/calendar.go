package domain

import "time"

// ContributionDay is one cell of the contribution heatmap. Level is the
// discrete intensity bucket derived from Count.
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
	Level int       `json:"level"`
}

// ContributionWeek is one column of the heatmap, Sunday through Saturday.
// The trailing week may hold fewer than seven days when the range ends on a
// week boundary.
type ContributionWeek struct {
	Days []ContributionDay `json:"days"`
}

// MonthLabel marks the week column where a new month's Sunday begins.
type MonthLabel struct {
	Name       string `json:"name"`
	WeekOffset int    `json:"week_offset"`
}

// CalendarGrid is the week-major layout of a year of daily contribution
// samples, ready for rendering. Weeks are in chronological order, index 0
// being the leftmost column.
type CalendarGrid struct {
	Weeks       []ContributionWeek `json:"weeks"`
	MonthLabels []MonthLabel       `json:"month_labels"`
	Total       int                `json:"total"`
}
