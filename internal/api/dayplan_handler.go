package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
	"fitcrm/diet-planner/internal/service"
)

// DayPlanHandler exposes the day-planning engine over HTTP. It keeps one
// DayPlanStore per plan so the store's selected-date and load-state
// semantics carry across requests from the same planning session.
type DayPlanHandler struct {
	days remote.DayService

	mu     sync.Mutex
	stores map[string]*service.DayPlanStore
}

// NewDayPlanHandler creates a new DayPlanHandler.
func NewDayPlanHandler(days remote.DayService) *DayPlanHandler {
	return &DayPlanHandler{
		days:   days,
		stores: make(map[string]*service.DayPlanStore),
	}
}

// storeFor returns the store owning the given plan's day state, creating it
// on first use.
func (h *DayPlanHandler) storeFor(planID string) (*service.DayPlanStore, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if store, ok := h.stores[planID]; ok {
		return store, nil
	}
	store, err := service.NewDayPlanStore(planID, h.days)
	if err != nil {
		return nil, err
	}
	h.stores[planID] = store
	return store, nil
}

// storeForDate resolves the plan's store and verifies the request's :date
// targets the day the store currently displays. A meal belongs to exactly one
// (plan, date) day record, so mutations against any other date are rejected
// before they can touch the displayed day or reach the remote service.
func (h *DayPlanHandler) storeForDate(c *gin.Context, planID string) (*service.DayPlanStore, bool) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return nil, false
	}

	store, err := h.storeFor(planID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	if store.SelectedDate() != domain.FormatDate(date) {
		abortWithError(c, http.StatusConflict, "Date does not match the loaded day; load the day first.")
		return nil, false
	}
	return store, true
}

// requestContext forwards the trainer's bearer token to the remote client.
func requestContext(c *gin.Context) context.Context {
	return remote.ContextWithToken(c.Request.Context(), getAuthTokenFromContext(c))
}

// --- DTOs for API (Data Transfer Objects) ---

// IngredientPayload is the wire form of one ingredient, both directions.
// Macro fields are the absolute contribution for the stated weight.
type IngredientPayload struct {
	Name        string  `json:"name" binding:"required"`
	WeightGrams float64 `json:"weightGrams"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

func (p IngredientPayload) toDomain() domain.Ingredient {
	return domain.Ingredient{
		Name:        p.Name,
		WeightGrams: p.WeightGrams,
		NutritionTotals: domain.NutritionTotals{
			Calories: p.Calories,
			Protein:  p.Protein,
			Carbs:    p.Carbs,
			Fats:     p.Fats,
		},
	}
}

// CreateMealRequest defines the expected JSON for composing a new meal.
type CreateMealRequest struct {
	Name              string              `json:"name" binding:"required"`
	Number            int                 `json:"number"`
	ScheduledTime     string              `json:"scheduledTime"`
	PortionCount      float64             `json:"portionCount"`
	WeightGrams       float64             `json:"weightGrams"`
	PreparationMethod string              `json:"preparationMethod"`
	Ingredients       []IngredientPayload `json:"ingredients"`
}

// SaveMealRequest is the full edited meal pushed back on the explicit save.
type SaveMealRequest struct {
	Name              string              `json:"name" binding:"required"`
	Number            int                 `json:"number"`
	ScheduledTime     string              `json:"scheduledTime"`
	PortionCount      float64             `json:"portionCount"`
	WeightGrams       float64             `json:"weightGrams"`
	PreparationMethod string              `json:"preparationMethod"`
	Ingredients       []IngredientPayload `json:"ingredients"`
}

// MealResponse is the DTO for returning meal details with derived totals.
type MealResponse struct {
	ID                string                 `json:"id"`
	Number            int                    `json:"number"`
	Name              string                 `json:"name"`
	ScheduledTime     string                 `json:"scheduledTime"`
	PortionCount      float64                `json:"portionCount"`
	WeightGrams       float64                `json:"weightGrams"`
	PreparationMethod string                 `json:"preparationMethod,omitempty"`
	Ingredients       []domain.Ingredient    `json:"ingredients"`
	Totals            domain.NutritionTotals `json:"totals"`
}

// DayResponse is the DTO for a loaded day with its derived totals.
type DayResponse struct {
	Date               string                 `json:"date"`
	State              string                 `json:"state"`
	Meals              []MealResponse         `json:"meals"`
	Totals             domain.NutritionTotals `json:"totals"`
	TargetRestrictions domain.NutritionTotals `json:"targetRestrictions"`
}

// MapMealToResponse converts a domain.Meal to its DTO.
func MapMealToResponse(m *domain.Meal) MealResponse {
	if m == nil {
		return MealResponse{}
	}
	ingredients := m.Ingredients
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	return MealResponse{
		ID:                m.ID,
		Number:            m.Number,
		Name:              m.Name,
		ScheduledTime:     m.ScheduledTime,
		PortionCount:      m.PortionCount,
		WeightGrams:       m.WeightGrams,
		PreparationMethod: m.PreparationMethod,
		Ingredients:       ingredients,
		Totals:            m.Totals,
	}
}

// MapDayToResponse converts a domain.Day plus its load state to the DTO.
func MapDayToResponse(day *domain.Day, state service.LoadState) DayResponse {
	resp := DayResponse{
		State: string(state),
		Meals: []MealResponse{},
	}
	if day == nil {
		return resp
	}
	resp.Date = day.Date
	resp.Totals = day.Totals
	resp.TargetRestrictions = day.TargetRestrictions
	for i := range day.Meals {
		resp.Meals = append(resp.Meals, MapMealToResponse(&day.Meals[i]))
	}
	return resp
}

// --- Handler Methods ---

// GetDay loads the day record for /plans/:planId/days/:date and returns it
// with per-meal and day totals. A date without a remote record comes back as
// an empty day, not a 404.
func (h *DayPlanHandler) GetDay(c *gin.Context) {
	planID := c.Param("planId")
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	store, err := h.storeFor(planID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	day, err := store.Load(requestContext(c), date)
	if err != nil {
		if errors.Is(err, service.ErrLoadSuperseded) {
			abortWithError(c, http.StatusConflict, "Day load superseded by a newer request.")
			return
		}
		if errors.Is(err, remote.ErrUnauthorized) {
			abortWithError(c, http.StatusUnauthorized, "Remote service rejected the credentials.")
			return
		}
		abortWithError(c, http.StatusBadGateway, "Failed to load day record.")
		return
	}

	c.JSON(http.StatusOK, MapDayToResponse(day, store.State()))
}

// CreateMeal composes a meal from the request body and submits it to the
// remote service; the canonical result is merged into the displayed day.
func (h *DayPlanHandler) CreateMeal(c *gin.Context) {
	planID := c.Param("planId")
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	composer := service.NewRecipeComposer(planID, date, h.days)
	composer.SetName(req.Name)
	composer.SetNumber(req.Number)
	composer.SetScheduledTime(req.ScheduledTime)
	composer.SetPortionCount(req.PortionCount)
	composer.SetWeight(req.WeightGrams)
	composer.SetPreparationMethod(req.PreparationMethod)
	for _, ing := range req.Ingredients {
		composer.AddIngredient(ing.toDomain())
	}

	meal, err := composer.Submit(requestContext(c))
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			abortWithError(c, http.StatusBadRequest, validationErr.Error())
			return
		}
		abortWithError(c, http.StatusBadGateway, "Failed to create meal.")
		return
	}

	// Merge into the displayed day only when this plan's store is showing the
	// day the meal was created for. A meal belongs to exactly one (plan, date)
	// day record; merging it into a different displayed day would let a later
	// save persist it under the wrong date. A store showing another date, or
	// none yet, simply returns the created meal.
	if store, storeErr := h.storeFor(planID); storeErr == nil && store.SelectedDate() == domain.FormatDate(date) {
		if _, addErr := store.AddMeal(*meal); addErr != nil && !errors.Is(addErr, service.ErrNoDayLoaded) {
			abortWithError(c, http.StatusInternalServerError, "Meal created but could not be merged locally.")
			return
		}
	}

	c.JSON(http.StatusCreated, MapMealToResponse(meal))
}

// SaveMeal is the explicit commit of a locally edited meal.
func (h *DayPlanHandler) SaveMeal(c *gin.Context) {
	planID := c.Param("planId")
	mealID := c.Param("mealId")

	var req SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	store, ok := h.storeForDate(c, planID)
	if !ok {
		return
	}

	meal := domain.Meal{
		ID:                mealID,
		Number:            req.Number,
		Name:              req.Name,
		ScheduledTime:     req.ScheduledTime,
		PortionCount:      req.PortionCount,
		WeightGrams:       req.WeightGrams,
		PreparationMethod: req.PreparationMethod,
		Ingredients:       make([]domain.Ingredient, 0, len(req.Ingredients)),
	}
	for _, ing := range req.Ingredients {
		meal.Ingredients = append(meal.Ingredients, ing.toDomain())
	}

	canonical, err := store.SaveMeal(requestContext(c), meal)
	if err != nil {
		h.abortForStoreError(c, err, "Failed to save meal.")
		return
	}

	c.JSON(http.StatusOK, MapMealToResponse(canonical))
}

// DeleteMeal removes a meal from the day record. Any confirmation dialog
// happens in the presentation layer before this endpoint is called.
func (h *DayPlanHandler) DeleteMeal(c *gin.Context) {
	planID := c.Param("planId")
	mealID := c.Param("mealId")

	store, ok := h.storeForDate(c, planID)
	if !ok {
		return
	}

	if _, err := store.RemoveMeal(requestContext(c), mealID); err != nil {
		h.abortForStoreError(c, err, "Failed to delete meal.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": mealID})
}

// AddIngredient appends an ingredient to a loaded meal. Local only; the
// change is persisted by SaveMeal.
func (h *DayPlanHandler) AddIngredient(c *gin.Context) {
	planID := c.Param("planId")
	mealID := c.Param("mealId")

	var payload IngredientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	store, ok := h.storeForDate(c, planID)
	if !ok {
		return
	}

	meal, err := store.EditMeal(mealID, func(m *domain.Meal) error {
		service.NewMealEditor(m).AddIngredient(payload.toDomain())
		return nil
	})
	if err != nil {
		h.abortForStoreError(c, err, "Failed to add ingredient.")
		return
	}

	c.JSON(http.StatusOK, MapMealToResponse(meal))
}

// UpdateIngredient patches one ingredient of a loaded meal in place.
func (h *DayPlanHandler) UpdateIngredient(c *gin.Context) {
	planID := c.Param("planId")
	mealID := c.Param("mealId")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ingredient index.")
		return
	}

	var patch service.IngredientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	store, ok := h.storeForDate(c, planID)
	if !ok {
		return
	}

	meal, err := store.EditMeal(mealID, func(m *domain.Meal) error {
		return service.NewMealEditor(m).UpdateIngredient(index, patch)
	})
	if err != nil {
		h.abortForStoreError(c, err, "Failed to update ingredient.")
		return
	}

	c.JSON(http.StatusOK, MapMealToResponse(meal))
}

// RemoveIngredient deletes one ingredient of a loaded meal in place.
func (h *DayPlanHandler) RemoveIngredient(c *gin.Context) {
	planID := c.Param("planId")
	mealID := c.Param("mealId")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ingredient index.")
		return
	}

	store, ok := h.storeForDate(c, planID)
	if !ok {
		return
	}

	meal, err := store.EditMeal(mealID, func(m *domain.Meal) error {
		return service.NewMealEditor(m).RemoveIngredient(index)
	})
	if err != nil {
		h.abortForStoreError(c, err, "Failed to remove ingredient.")
		return
	}

	c.JSON(http.StatusOK, MapMealToResponse(meal))
}

// abortForStoreError maps store/service errors onto HTTP statuses.
func (h *DayPlanHandler) abortForStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNoDayLoaded):
		abortWithError(c, http.StatusConflict, "No day record is loaded for this plan; load the day first.")
	case errors.Is(err, service.ErrMealNotFound):
		abortWithError(c, http.StatusNotFound, "Meal not found in the current day.")
	case errors.Is(err, service.ErrIngredientIndexRange):
		abortWithError(c, http.StatusBadRequest, "Ingredient index out of range.")
	case errors.Is(err, service.ErrMealIDRequired):
		abortWithError(c, http.StatusBadRequest, "Meal ID is required.")
	case errors.Is(err, remote.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Remote service has no such record.")
	case errors.Is(err, remote.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "Remote service rejected the credentials.")
	default:
		abortWithError(c, http.StatusBadGateway, fallback)
	}
}
