package service

import (
	"errors"

	"fitcrm/diet-planner/internal/domain"
)

// --- Error Definitions ---
var (
	ErrIngredientIndexRange = errors.New("ingredient index out of range")
)

// IngredientPatch is a partial update for one ingredient. Nil fields are left
// untouched. When only the weight changes, the macro fields are rescaled
// proportionally via ScaleToWeight so the stated contribution stays
// consistent with the new weight; supplying any macro field alongside the
// weight takes the supplied values verbatim instead.
type IngredientPatch struct {
	Name        *string  `json:"name,omitempty"`
	WeightGrams *float64 `json:"weightGrams,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fats        *float64 `json:"fats,omitempty"`
}

func (p IngredientPatch) touchesMacros() bool {
	return p.Calories != nil || p.Protein != nil || p.Carbs != nil || p.Fats != nil
}

// MealEditor performs in-place add/edit/remove of ingredients within an
// already-loaded meal, recomputing the meal totals after every mutation.
// Nothing here talks to the network: persistence happens only through the
// explicit save path (DayPlanStore.SaveMeal), so a trainer can assemble a
// multi-ingredient meal without one round-trip per ingredient.
type MealEditor struct {
	meal *domain.Meal
}

// NewMealEditor wraps a loaded meal for local editing.
func NewMealEditor(meal *domain.Meal) *MealEditor {
	meal.Normalize()
	return &MealEditor{meal: meal}
}

// AddIngredient appends an ingredient and recomputes the meal totals.
func (e *MealEditor) AddIngredient(ing domain.Ingredient) domain.NutritionTotals {
	e.meal.Ingredients = append(e.meal.Ingredients, ing)
	e.meal.RecomputeTotals()
	return e.meal.Totals
}

// UpdateIngredient applies a patch to the ingredient at index.
func (e *MealEditor) UpdateIngredient(index int, patch IngredientPatch) error {
	if index < 0 || index >= len(e.meal.Ingredients) {
		return ErrIngredientIndexRange
	}
	ing := e.meal.Ingredients[index]

	if patch.Name != nil {
		ing.Name = *patch.Name
	}
	if patch.WeightGrams != nil && !patch.touchesMacros() {
		ing = ing.ScaleToWeight(*patch.WeightGrams)
	} else {
		if patch.WeightGrams != nil {
			ing.WeightGrams = *patch.WeightGrams
		}
		if patch.Calories != nil {
			ing.Calories = *patch.Calories
		}
		if patch.Protein != nil {
			ing.Protein = *patch.Protein
		}
		if patch.Carbs != nil {
			ing.Carbs = *patch.Carbs
		}
		if patch.Fats != nil {
			ing.Fats = *patch.Fats
		}
	}

	e.meal.Ingredients[index] = ing
	e.meal.RecomputeTotals()
	return nil
}

// RemoveIngredient deletes the ingredient at index and recomputes totals.
func (e *MealEditor) RemoveIngredient(index int) error {
	if index < 0 || index >= len(e.meal.Ingredients) {
		return ErrIngredientIndexRange
	}
	e.meal.Ingredients = append(e.meal.Ingredients[:index], e.meal.Ingredients[index+1:]...)
	e.meal.RecomputeTotals()
	return nil
}

// Meal returns the meal being edited.
func (e *MealEditor) Meal() *domain.Meal {
	return e.meal
}

// Totals returns the current meal totals.
func (e *MealEditor) Totals() domain.NutritionTotals {
	return e.meal.Totals
}
