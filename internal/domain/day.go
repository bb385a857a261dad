package domain

import (
	"fmt"
	"time"
)

// DateFormat is the canonical wire format for day record dates.
const DateFormat = "2006-01-02"

// FormatDate renders a date as canonical YYYY-MM-DD using the LOCAL calendar
// components. A UTC ISO conversion here would shift the day for trainers west
// or east of UTC, so the local year/month/day are taken as-is.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a canonical YYYY-MM-DD string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}

// Day is the persisted set of meals and targets for one calendar date within
// a diet plan. A day is identified by (plan id, date) and fetched lazily; a
// date with no remote record is an empty day, not an error.
type Day struct {
	Date               string          `json:"date"` // canonical YYYY-MM-DD
	Meals              []Meal          `json:"meals"`
	Totals             NutritionTotals `json:"totals"`
	TargetRestrictions NutritionTotals `json:"targetRestrictions"`
}

// EmptyDay synthesizes a zero-meal day for a date the remote service has no
// record for.
func EmptyDay(date string) *Day {
	return &Day{Date: date, Meals: []Meal{}}
}

// Normalize applies defensive normalization to every meal in the day.
func (d *Day) Normalize() {
	if d.Meals == nil {
		d.Meals = []Meal{}
	}
	for i := range d.Meals {
		d.Meals[i].Normalize()
	}
}

// RecomputeTotals re-derives each meal's totals from its ingredients and then
// the day totals from the meals.
func (d *Day) RecomputeTotals() {
	mealTotals := make([]NutritionTotals, len(d.Meals))
	for i := range d.Meals {
		d.Meals[i].RecomputeTotals()
		mealTotals[i] = d.Meals[i].Totals
	}
	d.Totals = AggregateTotals(mealTotals)
}
