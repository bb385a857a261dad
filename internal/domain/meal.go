package domain

// Meal is one scheduled meal within a day record. Created when a recipe is
// composed and saved, mutated when ingredients are edited, removed via an
// explicit delete request to the remote service.
type Meal struct {
	ID                string       `json:"id,omitempty"` // server-assigned; drafts carry a client UUID until created
	Number            int          `json:"number"`
	Name              string       `json:"name"`
	ScheduledTime     string       `json:"scheduledTime"` // HH:MM
	PortionCount      float64      `json:"portionCount"`
	WeightGrams       float64      `json:"weightGrams"`
	PreparationMethod string       `json:"preparationMethod,omitempty"`
	Ingredients       []Ingredient `json:"ingredients"`
	Totals            NutritionTotals `json:"totals"`
}

// Normalize defends against malformed remote payloads: a missing ingredients
// field is treated as an empty list, never as an error.
func (m *Meal) Normalize() {
	if m.Ingredients == nil {
		m.Ingredients = []Ingredient{}
	}
}

// RecomputeTotals derives the meal totals from its ingredient list.
func (m *Meal) RecomputeTotals() {
	m.Totals = AggregateTotals(IngredientTotals(m.Ingredients))
}
