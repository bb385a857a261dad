package domain

import "time"

// WeekDay is one selectable day inside a calendar week strip.
type WeekDay struct {
	Name       string    `json:"name"` // localized day name, Monday-first
	Date       time.Time `json:"date"`
	DayOfMonth int       `json:"dayOfMonth"`
	IsToday    bool      `json:"isToday"`
}

// CalendarWeek is derived, never persisted: the seven days shown for one
// week number of the plan cycle.
type CalendarWeek struct {
	WeekNumber int       `json:"weekNumber"`
	Days       []WeekDay `json:"days"`
}

// SameDate reports whether two instants fall on the same local calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
