package domain

// DietPlan is the root aggregate: plan metadata plus the macro targets the
// per-day totals are checked against. Day records are not held as a list on
// the plan; they are addressed by (plan id, date) and fetched on demand.
type DietPlan struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ClientID           string          `json:"clientId"`
	Goal               string          `json:"goal,omitempty"` // e.g. "cut", "maintain", "bulk"
	TargetRestrictions NutritionTotals `json:"targetRestrictions"`
}
