package service

import (
	"errors"
	"testing"

	"fitcrm/diet-planner/internal/domain"
)

func breakfastMeal() *domain.Meal {
	meal := &domain.Meal{
		ID:   "m1",
		Name: "Breakfast",
		Ingredients: []domain.Ingredient{
			{Name: "Oats", WeightGrams: 80, NutritionTotals: domain.NutritionTotals{Calories: 300, Protein: 10, Carbs: 54, Fats: 6}},
			{Name: "Honey", WeightGrams: 15, NutritionTotals: domain.NutritionTotals{Calories: 50, Carbs: 12}},
		},
	}
	meal.RecomputeTotals()
	return meal
}

func TestEditorAddIngredientRecomputesTotals(t *testing.T) {
	meal := breakfastMeal()
	editor := NewMealEditor(meal)

	totals := editor.AddIngredient(domain.Ingredient{
		Name: "Milk", WeightGrams: 200, NutritionTotals: domain.NutritionTotals{Calories: 120, Protein: 7},
	})
	if totals.Calories != 470 {
		t.Fatalf("totals after add = %v, want 470", totals.Calories)
	}
	if meal.Totals.Calories != 470 {
		t.Fatalf("meal not updated in place: %v", meal.Totals.Calories)
	}
}

func TestEditorUpdateIngredientPatch(t *testing.T) {
	meal := breakfastMeal()
	editor := NewMealEditor(meal)

	name := "Raw honey"
	calories := 60.0
	if err := editor.UpdateIngredient(1, IngredientPatch{Name: &name, Calories: &calories}); err != nil {
		t.Fatalf("UpdateIngredient: %v", err)
	}
	if meal.Ingredients[1].Name != "Raw honey" || meal.Ingredients[1].Calories != 60 {
		t.Fatalf("patch not applied: %+v", meal.Ingredients[1])
	}
	if meal.Totals.Calories != 360 {
		t.Fatalf("totals after patch = %v, want 360", meal.Totals.Calories)
	}
}

func TestEditorWeightOnlyPatchRescalesMacros(t *testing.T) {
	meal := breakfastMeal()
	editor := NewMealEditor(meal)

	// Doubling the oats weight without restating macros must not silently
	// keep the old contribution.
	weight := 160.0
	if err := editor.UpdateIngredient(0, IngredientPatch{WeightGrams: &weight}); err != nil {
		t.Fatalf("UpdateIngredient: %v", err)
	}
	oats := meal.Ingredients[0]
	if oats.WeightGrams != 160 || oats.Calories != 600 || oats.Protein != 20 {
		t.Fatalf("weight-only patch did not rescale macros: %+v", oats)
	}
	if meal.Totals.Calories != 650 {
		t.Fatalf("totals after rescale = %v, want 650", meal.Totals.Calories)
	}
}

func TestEditorWeightWithMacrosTakesValuesVerbatim(t *testing.T) {
	meal := breakfastMeal()
	editor := NewMealEditor(meal)

	weight := 160.0
	calories := 610.0
	if err := editor.UpdateIngredient(0, IngredientPatch{WeightGrams: &weight, Calories: &calories}); err != nil {
		t.Fatalf("UpdateIngredient: %v", err)
	}
	oats := meal.Ingredients[0]
	if oats.WeightGrams != 160 || oats.Calories != 610 || oats.Protein != 10 {
		t.Fatalf("explicit macro patch was rescaled: %+v", oats)
	}
}

func TestEditorRemoveIngredient(t *testing.T) {
	meal := breakfastMeal()
	editor := NewMealEditor(meal)

	if err := editor.RemoveIngredient(1); err != nil {
		t.Fatalf("RemoveIngredient: %v", err)
	}
	if len(meal.Ingredients) != 1 || meal.Totals.Calories != 300 {
		t.Fatalf("after removal: %d ingredients, %v kcal", len(meal.Ingredients), meal.Totals.Calories)
	}
}

func TestEditorIndexOutOfRange(t *testing.T) {
	editor := NewMealEditor(breakfastMeal())

	if err := editor.RemoveIngredient(5); !errors.Is(err, ErrIngredientIndexRange) {
		t.Fatalf("expected ErrIngredientIndexRange, got %v", err)
	}
	if err := editor.UpdateIngredient(-1, IngredientPatch{}); !errors.Is(err, ErrIngredientIndexRange) {
		t.Fatalf("expected ErrIngredientIndexRange, got %v", err)
	}
}
