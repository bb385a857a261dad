package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitcrm/diet-planner/internal/remote"
)

// PlanHandler serves diet plan headers and ingredient autocomplete, both
// backed by external collaborators of the engine.
type PlanHandler struct {
	plans   remote.PlanService
	catalog remote.CatalogService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(plans remote.PlanService, catalog remote.CatalogService) *PlanHandler {
	return &PlanHandler{plans: plans, catalog: catalog}
}

// GetPlan returns the plan header with its macro targets.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.plans.GetPlan(requestContext(c), c.Param("planId"))
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Diet plan not found.")
			return
		}
		abortWithError(c, http.StatusBadGateway, "Failed to load diet plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SearchIngredients proxies autocomplete queries to the ingredient catalog.
func (h *PlanHandler) SearchIngredients(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'q' is required.")
		return
	}

	ingredients, err := h.catalog.SearchIngredients(requestContext(c), query)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Ingredient search failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
