package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"drivebook/models"
	"drivebook/services/availability"
	"drivebook/services/schedule"
	"drivebook/utils"
)

// AvailabilityHandler exposes weekly schedule, override, and slot endpoints.
type AvailabilityHandler struct {
	Service availability.Service
}

// NewAvailabilityHandler creates an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// weeklyDayResponse augments each day with its calendar-grid index
// (Sunday=0) so calendar UIs can place it without re-deriving the mapping.
type weeklyDayResponse struct {
	models.DayAvailability
	DayIndex int `json:"dayIndex"`
}

func weeklyResponse(days []models.DayAvailability) []weeklyDayResponse {
	out := make([]weeklyDayResponse, len(days))
	for i, d := range days {
		out[i] = weeklyDayResponse{DayAvailability: d, DayIndex: schedule.DayNameToIndex(d.DayOfWeek)}
	}
	return out
}

func (h *AvailabilityHandler) GetWeeklyHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	weekly, err := h.Service.GetWeekly(instructorID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch weekly availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": weeklyResponse(weekly)})
}

func (h *AvailabilityHandler) ReplaceWeeklyHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")

	var req struct {
		Days []models.DayAvailability `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid weekly availability payload", err.Error())
		return
	}

	weekly, err := h.Service.ReplaceWeekly(instructorID, req.Days)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update weekly availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": weeklyResponse(weekly)})
}

func (h *AvailabilityHandler) ListOverridesHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	overrides, err := h.Service.ListOverrides(instructorID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch overrides", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"overrides": overrides})
}

func (h *AvailabilityHandler) CreateOverrideHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")

	var override models.AvailabilityOverride
	if err := c.ShouldBindJSON(&override); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid override payload", err.Error())
		return
	}
	override.InstructorID = instructorID

	if err := h.Service.CreateOverride(override); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to save override", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"override": override})
}

func (h *AvailabilityHandler) DeleteOverrideHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	date := c.Param("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing override date in path", "")
		return
	}

	if err := h.Service.DeleteOverride(instructorID, date); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Override not found", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAvailableSlotsHandler is the public slot projection endpoint backing the
// booking grid and instructor calendar.
func (h *AvailabilityHandler) GetAvailableSlotsHandler(c *gin.Context) {
	instructorID := c.Param("instructorID")
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing from/to query parameters", "")
		return
	}

	duration := 60
	if d := c.Query("duration"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", d)
			return
		}
		duration = parsed
	}

	slots, err := h.Service.GetAvailableSlots(instructorID, from, to, duration)
	if err != nil {
		if errors.Is(err, availability.ErrInstructorNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Instructor not found", "")
			return
		}
		utils.GetLogger().Error("slot projection failed",
			zap.String("instructorId", instructorID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Failed to compute available slots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
