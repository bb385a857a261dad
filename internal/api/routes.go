package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitcrm/diet-planner/internal/config"
	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/remote"
)

// SetupRoutes wires the planner endpoints onto the router. All planning
// routes require a valid trainer token; the engine never issues tokens
// itself.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planner config.PlannerConfig,
	days remote.DayService,
	plans remote.PlanService,
	catalog remote.CatalogService,
) {
	dayPlanHandler := NewDayPlanHandler(days)
	calendarHandler := NewCalendarHandler(planner, time.Now)
	planHandler := NewPlanHandler(plans, catalog)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(authMiddleware, RoleMiddleware(domain.RoleTrainer))
	{
		protected.GET("/me", func(c *gin.Context) {
			trainerID, err := getTrainerIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get trainer ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"trainerId": trainerID})
		})

		planGroup := protected.Group("/plans/:planId")
		{
			planGroup.GET("", planHandler.GetPlan)

			// Calendar week strip
			planGroup.GET("/weeks/:week", calendarHandler.GetWeek)

			// Day records and meals
			planGroup.GET("/days/:date", dayPlanHandler.GetDay)
			planGroup.POST("/days/:date/meals", dayPlanHandler.CreateMeal)
			planGroup.PUT("/days/:date/meals/:mealId", dayPlanHandler.SaveMeal)
			planGroup.DELETE("/days/:date/meals/:mealId", dayPlanHandler.DeleteMeal)

			// Local ingredient editing; persisted only by the PUT above
			planGroup.POST("/days/:date/meals/:mealId/ingredients", dayPlanHandler.AddIngredient)
			planGroup.PUT("/days/:date/meals/:mealId/ingredients/:index", dayPlanHandler.UpdateIngredient)
			planGroup.DELETE("/days/:date/meals/:mealId/ingredients/:index", dayPlanHandler.RemoveIngredient)
		}

		protected.GET("/ingredients/search", planHandler.SearchIngredients)
	}
}
