package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitcrm/diet-planner/internal/config"
	"fitcrm/diet-planner/internal/domain"
	"fitcrm/diet-planner/internal/service"
)

// CalendarHandler serves the week strip the planner UI navigates with. Week
// derivation is stateless per request; the movable week/day index on
// CalendarNavigator is a session concern owned by the presentation layer,
// which tracks its position and asks for weeks by number.
type CalendarHandler struct {
	planner config.PlannerConfig
	now     func() time.Time
}

// NewCalendarHandler creates a new CalendarHandler. now is injectable for
// tests; pass nil for the real clock.
func NewCalendarHandler(planner config.PlannerConfig, now func() time.Time) *CalendarHandler {
	if now == nil {
		now = time.Now
	}
	return &CalendarHandler{planner: planner, now: now}
}

func (h *CalendarHandler) navigator() *service.CalendarNavigator {
	return service.NewCalendarNavigator(h.planner.WeekNumbers, h.planner.DayNames, h.now)
}

// --- DTOs for API (Data Transfer Objects) ---

// WeekDayResponse is one selectable day of the strip.
type WeekDayResponse struct {
	Name       string `json:"name"`
	Date       string `json:"date"` // canonical YYYY-MM-DD
	DayOfMonth int    `json:"dayOfMonth"`
	IsToday    bool   `json:"isToday"`
}

// WeekResponse is the derived week for one week number of the cycle.
type WeekResponse struct {
	WeekNumber  int               `json:"weekNumber"`
	WeekNumbers []int             `json:"weekNumbers"` // the selectable cycle
	Days        []WeekDayResponse `json:"days"`
}

// MapWeekToResponse converts a derived calendar week to its DTO.
func MapWeekToResponse(week domain.CalendarWeek, cycle []int) WeekResponse {
	days := make([]WeekDayResponse, len(week.Days))
	for i, d := range week.Days {
		days[i] = WeekDayResponse{
			Name:       d.Name,
			Date:       domain.FormatDate(d.Date),
			DayOfMonth: d.DayOfMonth,
			IsToday:    d.IsToday,
		}
	}
	return WeekResponse{
		WeekNumber:  week.WeekNumber,
		WeekNumbers: cycle,
		Days:        days,
	}
}

// GetWeek returns the seven days for /plans/:planId/weeks/:week.
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	weekNumber, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid week number.")
		return
	}

	nav := h.navigator()
	week, err := nav.SelectWeek(weekNumber)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Week number is not part of the plan cycle.")
		return
	}

	c.JSON(http.StatusOK, MapWeekToResponse(week, nav.WeekNumbers()))
}
