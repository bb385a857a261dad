package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
)

// LoadState describes where the store is in its day-loading lifecycle.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
	StateEmpty   LoadState = "empty" // remote has no record for the date; zero-meal day
	StateFailed  LoadState = "failed"
)

// --- Error Definitions ---
var (
	ErrNoDayLoaded    = errors.New("no day record is loaded")
	ErrMealNotFound   = errors.New("meal not found in the current day")
	ErrLoadSuperseded = errors.New("day load superseded by a newer request")
	ErrPlanIDRequired = errors.New("plan ID is required")
	ErrMealIDRequired = errors.New("meal ID is required")
)

// DayPlanStore owns the day record for one diet plan: the currently selected
// date, its meal list, and the derived per-meal and per-day totals. It is the
// sole writer of that state; other components read through it or submit
// mutation requests to it.
//
// The plan ID is an explicit constructor argument, never read from ambient
// state.
type DayPlanStore struct {
	planID string
	days   remote.DayService

	mu           sync.Mutex
	loadSeq      uint64
	state        LoadState
	day          *domain.Day
	selectedDate string
	lastErr      error
}

// NewDayPlanStore creates a store for one plan.
func NewDayPlanStore(planID string, days remote.DayService) (*DayPlanStore, error) {
	if planID == "" {
		return nil, ErrPlanIDRequired
	}
	return &DayPlanStore{
		planID: planID,
		days:   days,
		state:  StateIdle,
	}, nil
}

// PlanID returns the plan this store synchronizes against.
func (s *DayPlanStore) PlanID() string {
	return s.planID
}

// Load fetches the day record for the given date and makes it the displayed
// day. The date is formatted from its local calendar components.
//
// A newer Load supersedes any in-flight one: each load takes the next value
// of a monotonic sequence, and a response is discarded unless its sequence is
// still current when it resolves. The displayed day therefore always matches
// the most recently REQUESTED date, even when responses arrive out of order.
//
// A "not found" from the remote service is not an error: the store moves to
// StateEmpty with a synthesized zero-meal day. Any other failure moves the
// store to StateFailed and clears the previous day entirely, so stale data
// from a different date is never shown.
func (s *DayPlanStore) Load(ctx context.Context, date time.Time) (*domain.Day, error) {
	dateStr := domain.FormatDate(date)

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.state = StateLoading
	s.selectedDate = dateStr
	s.mu.Unlock()

	day, err := s.days.GetDay(ctx, s.planID, dateStr)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// A later Load took over while this one was in flight.
		return nil, ErrLoadSuperseded
	}

	switch {
	case err == nil:
		day.Date = dateStr
		day.Normalize()
		day.RecomputeTotals()
		s.day = day
		s.state = StateLoaded
		s.lastErr = nil
		return s.day, nil
	case errors.Is(err, remote.ErrNotFound):
		s.day = domain.EmptyDay(dateStr)
		s.day.RecomputeTotals()
		s.state = StateEmpty
		s.lastErr = nil
		return s.day, nil
	default:
		s.day = nil
		s.state = StateFailed
		s.lastErr = err
		return nil, err
	}
}

// AddMeal merges a newly created canonical meal into the displayed day and
// re-derives the totals. Meals are matched by id, so re-adding a meal the
// server already returned replaces it instead of duplicating it.
func (s *DayPlanStore) AddMeal(meal domain.Meal) (*domain.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == nil {
		return nil, ErrNoDayLoaded
	}

	meal.Normalize()
	replaced := false
	for i := range s.day.Meals {
		if meal.ID != "" && s.day.Meals[i].ID == meal.ID {
			s.day.Meals[i] = meal
			replaced = true
			break
		}
	}
	if !replaced {
		s.day.Meals = append(s.day.Meals, meal)
	}
	s.day.RecomputeTotals()
	s.state = StateLoaded
	return s.day, nil
}

// RemoveMeal requests deletion of a meal from the remote service and, on
// confirmation, removes it from the displayed day. Any user confirmation
// step happens before this call. The store mutex is held across the remote
// call so meal mutations against the same day serialize.
func (s *DayPlanStore) RemoveMeal(ctx context.Context, mealID string) (*domain.Day, error) {
	if mealID == "" {
		return nil, ErrMealIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == nil {
		return nil, ErrNoDayLoaded
	}

	index := -1
	for i := range s.day.Meals {
		if s.day.Meals[i].ID == mealID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrMealNotFound
	}

	if err := s.days.DeleteMeal(ctx, s.planID, s.day.Date, mealID); err != nil {
		return nil, err
	}

	s.day.Meals = append(s.day.Meals[:index], s.day.Meals[index+1:]...)
	s.day.RecomputeTotals()
	return s.day, nil
}

// EditMeal runs fn against one meal of the displayed day under the store's
// lock, then re-derives the day totals. This is the in-place editing path:
// nothing is persisted until SaveMeal is called.
func (s *DayPlanStore) EditMeal(mealID string, fn func(*domain.Meal) error) (*domain.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == nil {
		return nil, ErrNoDayLoaded
	}
	for i := range s.day.Meals {
		if s.day.Meals[i].ID == mealID {
			if err := fn(&s.day.Meals[i]); err != nil {
				return nil, err
			}
			s.day.RecomputeTotals()
			meal := s.day.Meals[i]
			return &meal, nil
		}
	}
	return nil, ErrMealNotFound
}

// SaveMeal pushes a locally edited meal back to the remote service and
// replaces the local copy with the canonical response. This is the explicit
// commit that follows any number of free local edits.
func (s *DayPlanStore) SaveMeal(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	if meal.ID == "" {
		return nil, ErrMealIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == nil {
		return nil, ErrNoDayLoaded
	}

	meal.Normalize()
	meal.RecomputeTotals()
	canonical, err := s.days.UpdateMeal(ctx, s.planID, s.day.Date, &meal)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range s.day.Meals {
		if s.day.Meals[i].ID == canonical.ID {
			s.day.Meals[i] = *canonical
			replaced = true
			break
		}
	}
	if !replaced {
		s.day.Meals = append(s.day.Meals, *canonical)
	}
	s.day.RecomputeTotals()
	return canonical, nil
}

// MealByID returns a copy of one meal of the displayed day.
func (s *DayPlanStore) MealByID(mealID string) (domain.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == nil {
		return domain.Meal{}, ErrNoDayLoaded
	}
	for i := range s.day.Meals {
		if s.day.Meals[i].ID == mealID {
			return s.day.Meals[i], nil
		}
	}
	return domain.Meal{}, ErrMealNotFound
}

// State reports the current lifecycle state.
func (s *DayPlanStore) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Day returns the currently displayed day, or nil when no day is shown
// (idle, loading with nothing yet, or failed).
func (s *DayPlanStore) Day() *domain.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day
}

// SelectedDate returns the canonical date string of the most recently
// requested day.
func (s *DayPlanStore) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// LastError returns the failure that put the store into StateFailed, if any.
func (s *DayPlanStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
