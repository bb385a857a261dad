package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
)

// ValidationError blocks a submission locally; it never reaches the network.
// Field names the input the caller has to correct.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// RecipeComposer builds a draft meal incrementally for one (plan, date) pair
// and submits it to the remote service. The draft carries a client-side UUID
// until the server's canonical representation (with its own id) replaces it.
//
// The composer is not safe for concurrent use; each composition session gets
// its own instance.
type RecipeComposer struct {
	planID string
	date   string
	days   remote.DayService
	draft  domain.Meal
}

// NewRecipeComposer starts an empty draft for the given plan and date.
func NewRecipeComposer(planID string, date time.Time, days remote.DayService) *RecipeComposer {
	return &RecipeComposer{
		planID: planID,
		date:   domain.FormatDate(date),
		days:   days,
		draft: domain.Meal{
			ID:          uuid.NewString(),
			Ingredients: []domain.Ingredient{},
		},
	}
}

// SetName sets the meal name.
func (c *RecipeComposer) SetName(name string) {
	c.draft.Name = name
}

// SetScheduledTime sets the HH:MM schedule slot.
func (c *RecipeComposer) SetScheduledTime(hhmm string) {
	c.draft.ScheduledTime = hhmm
}

// SetPortionCount sets how many portions the recipe yields.
func (c *RecipeComposer) SetPortionCount(portions float64) {
	c.draft.PortionCount = portions
}

// SetWeight sets the total prepared weight in grams.
func (c *RecipeComposer) SetWeight(grams float64) {
	c.draft.WeightGrams = grams
}

// SetPreparationMethod sets the free-text preparation notes.
func (c *RecipeComposer) SetPreparationMethod(method string) {
	c.draft.PreparationMethod = method
}

// SetNumber sets the meal's position within the day.
func (c *RecipeComposer) SetNumber(number int) {
	c.draft.Number = number
}

// AddIngredient appends an ingredient to the draft and returns the running
// totals so the caller can display them after every addition.
func (c *RecipeComposer) AddIngredient(ing domain.Ingredient) domain.NutritionTotals {
	c.draft.Ingredients = append(c.draft.Ingredients, ing)
	c.draft.RecomputeTotals()
	return c.draft.Totals
}

// Totals returns the running totals of the draft.
func (c *RecipeComposer) Totals() domain.NutritionTotals {
	return c.draft.Totals
}

// Draft returns a copy of the meal under construction.
func (c *RecipeComposer) Draft() domain.Meal {
	return c.draft
}

// Submit validates the draft and sends it to the remote service. Validation
// failures (empty name, zero ingredients) surface as *ValidationError and
// perform no network call. On success the server's canonical meal replaces
// the draft and is returned for DayPlanStore.AddMeal; on remote failure the
// draft is preserved unchanged so the trainer can retry.
func (c *RecipeComposer) Submit(ctx context.Context) (*domain.Meal, error) {
	if strings.TrimSpace(c.draft.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "meal name must not be empty"}
	}
	if len(c.draft.Ingredients) == 0 {
		return nil, &ValidationError{Field: "ingredients", Reason: "at least one ingredient is required"}
	}

	c.draft.RecomputeTotals()
	canonical, err := c.days.CreateMeal(ctx, c.planID, c.date, &c.draft)
	if err != nil {
		return nil, err
	}
	c.draft = *canonical
	return canonical, nil
}
