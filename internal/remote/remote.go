package remote

import (
	"context"

	"fitcrm/diet-planner/internal/domain"
)

// Error constants for the remote service layer.
var (
	ErrNotFound     = RemoteError("not found")
	ErrUnauthorized = RemoteError("unauthorized")
	ErrUnavailable  = RemoteError("remote service unavailable")
)

// RemoteError helps distinguish remote service errors from local ones.
type RemoteError string

func (e RemoteError) Error() string {
	return string(e)
}

// DayService is the interface to the CRM persistence service for day records.
// GetDay returns ErrNotFound (wrapped or bare) for a date with no record;
// callers treat that as an empty day, not a failure.
type DayService interface {
	GetDay(ctx context.Context, planID, date string) (*domain.Day, error)
	CreateMeal(ctx context.Context, planID, date string, draft *domain.Meal) (*domain.Meal, error)
	UpdateMeal(ctx context.Context, planID, date string, meal *domain.Meal) (*domain.Meal, error)
	DeleteMeal(ctx context.Context, planID, date, mealID string) error
}

// PlanService fetches diet plan headers (name, goal, macro targets).
type PlanService interface {
	GetPlan(ctx context.Context, planID string) (*domain.DietPlan, error)
}

// CatalogService is the ingredient-catalog collaborator used for autocomplete
// suggestions while composing a recipe. The catalog itself is owned elsewhere.
type CatalogService interface {
	SearchIngredients(ctx context.Context, query string) ([]domain.Ingredient, error)
}
