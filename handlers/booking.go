package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"drivebook/models"
	"drivebook/services/booking"
	"drivebook/services/payment"
	"drivebook/utils"
)

// BookingHandler exposes the lesson lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) BookLessonHandler(c *gin.Context) {
	learnerID := c.GetString("learnerID")

	var req models.BookLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	lesson, invoice, err := h.Service.BookLesson(c.Request.Context(), learnerID, req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInstructorNotFound):
			utils.JSONError(c, http.StatusNotFound, "Instructor not found", "")
		case errors.Is(err, booking.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusConflict, "Requested slot is no longer available", "")
		case errors.Is(err, payment.ErrInsufficientBalance):
			utils.JSONError(c, http.StatusPaymentRequired, "Insufficient balance", "")
		default:
			utils.JSONError(c, http.StatusBadRequest, "Failed to book lesson", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson, "invoice": invoice})
}

func (h *BookingHandler) ListLearnerLessonsHandler(c *gin.Context) {
	learnerID := c.GetString("learnerID")
	lessons, err := h.Service.ListLearnerLessons(learnerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch lessons", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func (h *BookingHandler) ListInstructorLessonsHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	lessons, err := h.Service.ListInstructorLessons(instructorID, c.Query("from"), c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch lessons", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// PreviewCancellationHandler returns the advisory fee breakdown without
// changing the lesson. The actual cancel recomputes it server-side.
func (h *BookingHandler) PreviewCancellationHandler(c *gin.Context) {
	learnerID := c.GetString("learnerID")
	lessonID := c.Param("lessonID")

	preview, err := h.Service.PreviewCancellation(lessonID, learnerID)
	if err != nil {
		h.writeCancellationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": preview})
}

func (h *BookingHandler) CancelLessonHandler(c *gin.Context) {
	learnerID := c.GetString("learnerID")
	lessonID := c.Param("lessonID")

	preview, err := h.Service.CancelLesson(c.Request.Context(), lessonID, learnerID)
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyCancelled) {
			// Repeated cancels are a no-op, not an error.
			c.JSON(http.StatusOK, gin.H{"status": models.LessonStatusCancelled})
			return
		}
		h.writeCancellationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.LessonStatusCancelled, "preview": preview})
}

func (h *BookingHandler) CompleteLessonHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	lessonID := c.Param("lessonID")

	if err := h.Service.CompleteLesson(c.Request.Context(), lessonID, instructorID); err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.LessonStatusCompleted})
}

func (h *BookingHandler) NoShowHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	lessonID := c.Param("lessonID")

	if err := h.Service.MarkNoShow(c.Request.Context(), lessonID, instructorID); err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.LessonStatusNoShow})
}

func (h *BookingHandler) writeCancellationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrLessonNotFound), errors.Is(err, booking.ErrNotLessonOwner):
		utils.JSONError(c, http.StatusNotFound, "Lesson not found", "")
	case errors.Is(err, booking.ErrCancellationNotAllowed):
		utils.JSONError(c, http.StatusForbidden, "Cancellation is not allowed for this lesson", err.Error())
	case errors.Is(err, booking.ErrLessonNotCancellable):
		utils.JSONError(c, http.StatusConflict, "Lesson can no longer be cancelled", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Cancellation failed", err.Error())
	}
}

func (h *BookingHandler) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrLessonNotFound), errors.Is(err, booking.ErrNotLessonOwner):
		utils.JSONError(c, http.StatusNotFound, "Lesson not found", "")
	case errors.Is(err, booking.ErrLessonNotScheduled):
		utils.JSONError(c, http.StatusConflict, "Lesson is not in the scheduled status", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update lesson", err.Error())
	}
}
