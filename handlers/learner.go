package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"drivebook/models"
	"drivebook/services/learner"
	"drivebook/utils"
)

// LearnerHandler exposes learner account endpoints.
type LearnerHandler struct {
	Service learner.LearnerService
}

// NewLearnerHandler creates a LearnerHandler.
func NewLearnerHandler(svc learner.LearnerService) *LearnerHandler {
	return &LearnerHandler{Service: svc}
}

func (h *LearnerHandler) RegisterLearnerHandler(c *gin.Context) {
	var req models.LearnerRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	l, token, err := h.Service.Register(req)
	if err != nil {
		if errors.Is(err, learner.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register learner", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"learner": l, "token": token})
}

func (h *LearnerHandler) AuthenticateLearnerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	l, token, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, learner.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"learner": l, "token": token})
}

// GetMeHandler returns the authenticated learner's profile, including the
// current account balance.
func (h *LearnerHandler) GetMeHandler(c *gin.Context) {
	learnerID := c.GetString("learnerID")
	l, err := h.Service.GetByID(learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Learner not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch learner", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"learner": l})
}
