package service

import (
	"errors"
	"time"

	"fitcrm/diet-planner/internal/domain"
)

// --- Error Definitions ---
var (
	ErrWeekNotConfigured = errors.New("week number is not in the configured cycle")
	ErrDayIndexRange     = errors.New("day index must be between 0 and 6")
)

// defaultDayNames is the Monday-first fallback when no localized names are
// configured.
var defaultDayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// CalendarNavigator maps a (year, week number) pair to the seven calendar
// dates shown in the week strip and tracks a movable index into the
// configured list of selectable week numbers.
//
// The week math deliberately deviates from ISO-8601: after the raw
// first-Monday arithmetic, the month is overridden to the current real-world
// month so the displayed week never spills into an adjacent month. Downstream
// display logic depends on this clamping, so it must not be "fixed" to true
// ISO week numbering.
type CalendarNavigator struct {
	weekNumbers []int
	dayNames    []string
	weekIndex   int
	dayIndex    int
	now         func() time.Time
}

// NewCalendarNavigator creates a navigator over the given week-number cycle.
// now is injectable so "today" detection is testable; pass nil for the real
// clock.
func NewCalendarNavigator(weekNumbers []int, dayNames []string, now func() time.Time) *CalendarNavigator {
	if len(weekNumbers) == 0 {
		weekNumbers = []int{1, 2, 3, 4}
	}
	if len(dayNames) != 7 {
		dayNames = defaultDayNames
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarNavigator{
		weekNumbers: weekNumbers,
		dayNames:    dayNames,
		now:         now,
	}
}

// WeekDays computes the seven Monday-first calendar dates of the given week.
//
// Steps:
//  1. Find the first Monday offset from Jan 1 of the year (+1 day when Jan 1
//     is a Sunday, otherwise 8 - weekday).
//  2. Advance (weekNumber-1)*7 days to the start of the target week.
//  3. Month-alignment adjustment: force the anchor into the current
//     real-world month; when the day-of-month would overflow that month,
//     clamp to daysInMonth-6 so a full week still fits.
//  4. Emit 7 consecutive dates tagged with day name and an isToday flag.
func (n *CalendarNavigator) WeekDays(year, weekNumber int) []domain.WeekDay {
	now := n.now()

	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	var offset int
	if jan1.Weekday() == time.Sunday {
		offset = 1
	} else {
		offset = 8 - int(jan1.Weekday())
	}
	anchor := jan1.AddDate(0, 0, offset+(weekNumber-1)*7)

	dayOfMonth := anchor.Day()
	if max := daysInMonth(now.Year(), now.Month()); dayOfMonth > max {
		dayOfMonth = max - 6
	}
	anchor = time.Date(now.Year(), now.Month(), dayOfMonth, 0, 0, 0, 0, time.Local)

	days := make([]domain.WeekDay, 7)
	for i := 0; i < 7; i++ {
		date := anchor.AddDate(0, 0, i)
		days[i] = domain.WeekDay{
			Name:       n.dayNames[i],
			Date:       date,
			DayOfMonth: date.Day(),
			IsToday:    domain.SameDate(date, now),
		}
	}
	return days
}

// CurrentWeek derives the week at the movable index.
func (n *CalendarNavigator) CurrentWeek() domain.CalendarWeek {
	weekNumber := n.weekNumbers[n.weekIndex]
	return domain.CalendarWeek{
		WeekNumber: weekNumber,
		Days:       n.WeekDays(n.now().Year(), weekNumber),
	}
}

// NextWeek advances the week index, clamped at the last configured week.
// The first day of the new week becomes the selected day.
func (n *CalendarNavigator) NextWeek() domain.CalendarWeek {
	if n.weekIndex < len(n.weekNumbers)-1 {
		n.weekIndex++
	}
	n.dayIndex = 0
	return n.CurrentWeek()
}

// PrevWeek moves the week index back, clamped at the first configured week.
// The first day of the new week becomes the selected day.
func (n *CalendarNavigator) PrevWeek() domain.CalendarWeek {
	if n.weekIndex > 0 {
		n.weekIndex--
	}
	n.dayIndex = 0
	return n.CurrentWeek()
}

// SelectWeek jumps to a configured week number and re-selects its first day.
func (n *CalendarNavigator) SelectWeek(weekNumber int) (domain.CalendarWeek, error) {
	for i, wn := range n.weekNumbers {
		if wn == weekNumber {
			n.weekIndex = i
			n.dayIndex = 0
			return n.CurrentWeek(), nil
		}
	}
	return domain.CalendarWeek{}, ErrWeekNotConfigured
}

// SelectDay picks a day of the current week by index (0 = Monday) and
// returns it with its name and concrete date.
func (n *CalendarNavigator) SelectDay(index int) (domain.WeekDay, error) {
	if index < 0 || index > 6 {
		return domain.WeekDay{}, ErrDayIndexRange
	}
	n.dayIndex = index
	return n.CurrentWeek().Days[index], nil
}

// SelectedDay returns the currently selected day of the current week.
func (n *CalendarNavigator) SelectedDay() domain.WeekDay {
	return n.CurrentWeek().Days[n.dayIndex]
}

// WeekNumbers exposes the configured selectable cycle.
func (n *CalendarNavigator) WeekNumbers() []int {
	return n.weekNumbers
}

// daysInMonth counts the days of a month via the zeroth-day trick.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
