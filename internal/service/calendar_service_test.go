package service

import (
	"testing"
	"time"

	"fitcrm/diet-planner/internal/domain"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	}
}

func TestWeekDaysSevenConsecutiveMondayFirst(t *testing.T) {
	// Jan 1 2025 is a Wednesday: first Monday offset is 8-3=5, so week 1
	// anchors on Jan 6. The clock sits inside that week.
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))

	days := nav.WeekDays(2025, 1)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Name != "Monday" || days[6].Name != "Sunday" {
		t.Fatalf("expected Monday-first naming, got %s..%s", days[0].Name, days[6].Name)
	}
	if got := domain.FormatDate(days[0].Date); got != "2025-01-06" {
		t.Fatalf("week anchor = %s, want 2025-01-06", got)
	}
	for i := 1; i < 7; i++ {
		if !domain.SameDate(days[i].Date, days[i-1].Date.AddDate(0, 0, 1)) {
			t.Fatalf("dates not consecutive at index %d", i)
		}
	}
}

func TestWeekDaysExactlyOneTodayWhenInRange(t *testing.T) {
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))

	days := nav.WeekDays(2025, 1)
	todayCount := 0
	todayIndex := -1
	for i, d := range days {
		if d.IsToday {
			todayCount++
			todayIndex = i
		}
	}
	if todayCount != 1 || todayIndex != 2 {
		t.Fatalf("expected exactly one isToday at index 2 (Wednesday), got count=%d index=%d", todayCount, todayIndex)
	}
}

func TestWeekDaysNoTodayOutsideRange(t *testing.T) {
	// Clock in week 1; week 3 of the same month must not contain "today".
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))

	for _, d := range nav.WeekDays(2025, 3) {
		if d.IsToday {
			t.Fatalf("unexpected isToday on %s", domain.FormatDate(d.Date))
		}
	}
}

func TestWeekDaysMonthAlignment(t *testing.T) {
	// Raw arithmetic for 2025 week 2 anchors on Jan 13; with the clock in
	// March the month is overridden so the strip stays inside March.
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.March, 20))

	days := nav.WeekDays(2025, 2)
	if got := domain.FormatDate(days[0].Date); got != "2025-03-13" {
		t.Fatalf("aligned anchor = %s, want 2025-03-13", got)
	}
}

func TestWeekDaysClampWhenDayOverflowsMonth(t *testing.T) {
	// 2024 week 4 anchors on day 29 (Jan 1 2024 is a Monday, offset 7,
	// 8 + 21 = 29). February 2025 has 28 days, so the day clamps to 22 and
	// a full week still fits inside the month.
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.February, 10))

	days := nav.WeekDays(2024, 4)
	if got := domain.FormatDate(days[0].Date); got != "2025-02-22" {
		t.Fatalf("clamped anchor = %s, want 2025-02-22", got)
	}
	if got := domain.FormatDate(days[6].Date); got != "2025-02-28" {
		t.Fatalf("clamped week end = %s, want 2025-02-28", got)
	}
}

func TestWeekNavigationClampsAtEnds(t *testing.T) {
	nav := NewCalendarNavigator([]int{1, 2, 3}, nil, fixedClock(2025, time.January, 8))

	if week := nav.PrevWeek(); week.WeekNumber != 1 {
		t.Fatalf("PrevWeek at start = %d, want 1", week.WeekNumber)
	}
	nav.NextWeek()
	nav.NextWeek()
	if week := nav.NextWeek(); week.WeekNumber != 3 {
		t.Fatalf("NextWeek at end = %d, want 3", week.WeekNumber)
	}
}

func TestSelectWeekReselectsFirstDay(t *testing.T) {
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))

	if _, err := nav.SelectDay(4); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	week, err := nav.SelectWeek(2)
	if err != nil {
		t.Fatalf("SelectWeek: %v", err)
	}
	if week.WeekNumber != 2 {
		t.Fatalf("week number = %d, want 2", week.WeekNumber)
	}
	selected := nav.SelectedDay()
	if selected.Name != "Monday" {
		t.Fatalf("selected day after week change = %s, want Monday", selected.Name)
	}
}

func TestSelectWeekUnknownNumber(t *testing.T) {
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))
	if _, err := nav.SelectWeek(9); err != ErrWeekNotConfigured {
		t.Fatalf("expected ErrWeekNotConfigured, got %v", err)
	}
}

func TestSelectDayEmitsNameAndDate(t *testing.T) {
	nav := NewCalendarNavigator([]int{1, 2, 3, 4}, nil, fixedClock(2025, time.January, 8))

	day, err := nav.SelectDay(2)
	if err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if day.Name != "Wednesday" {
		t.Fatalf("day name = %s, want Wednesday", day.Name)
	}
	if got := domain.FormatDate(day.Date); got != "2025-01-08" {
		t.Fatalf("day date = %s, want 2025-01-08", got)
	}

	if _, err := nav.SelectDay(7); err != ErrDayIndexRange {
		t.Fatalf("expected ErrDayIndexRange, got %v", err)
	}
}
