package domain

// NutritionTotals is the macro 4-tuple used everywhere in the planner:
// kilocalories plus protein/carbs/fats in grams. It is a pure value type,
// always derived from ingredients or supplied by the remote service, never
// persisted on its own.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns the field-wise sum of two totals.
func (t NutritionTotals) Add(other NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories: t.Calories + other.Calories,
		Protein:  t.Protein + other.Protein,
		Carbs:    t.Carbs + other.Carbs,
		Fats:     t.Fats + other.Fats,
	}
}

// IsZero reports whether all four macro fields are zero.
func (t NutritionTotals) IsZero() bool {
	return t == NutritionTotals{}
}

// AggregateTotals computes the field-wise sum of a list of totals.
// An empty (or nil) list yields all-zero totals. The input is never mutated.
// The same function serves both roll-up levels: ingredients into a meal and
// meals into a day.
func AggregateTotals(items []NutritionTotals) NutritionTotals {
	var sum NutritionTotals
	for _, item := range items {
		sum = sum.Add(item)
	}
	return sum
}

// Ingredient is one food item as entered by the trainer.
//
// Macro convention: the embedded macro fields hold the ABSOLUTE contribution
// of this ingredient at the stated weight, not per-100g rates. Aggregation
// therefore sums the fields directly and never scales by weight. Use
// ScaleToWeight when changing the weight so the macro fields stay consistent.
type Ingredient struct {
	Name        string  `json:"name"`
	WeightGrams float64 `json:"weightGrams"`
	NutritionTotals
}

// Totals returns the macro contribution of this ingredient.
func (i Ingredient) Totals() NutritionTotals {
	return i.NutritionTotals
}

// ScaleToWeight rescales the macro fields proportionally to a new weight and
// returns the adjusted ingredient. A negative target weight is clamped to
// zero; with a zero or negative current weight there is no meaningful rate to
// scale by, so only the weight is replaced.
func (i Ingredient) ScaleToWeight(weightGrams float64) Ingredient {
	if weightGrams < 0 {
		weightGrams = 0
	}
	if i.WeightGrams > 0 {
		factor := weightGrams / i.WeightGrams
		i.Calories *= factor
		i.Protein *= factor
		i.Carbs *= factor
		i.Fats *= factor
	}
	i.WeightGrams = weightGrams
	return i
}

// IngredientTotals extracts the macro contribution of each ingredient,
// ready to be aggregated into meal totals.
func IngredientTotals(ingredients []Ingredient) []NutritionTotals {
	totals := make([]NutritionTotals, len(ingredients))
	for idx, ing := range ingredients {
		totals[idx] = ing.Totals()
	}
	return totals
}
