package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"drivebook/models"
	"drivebook/services/instructor"
	"drivebook/utils"
)

// InstructorHandler exposes instructor account and policy endpoints.
type InstructorHandler struct {
	Service instructor.InstructorService
}

// NewInstructorHandler creates an InstructorHandler.
func NewInstructorHandler(svc instructor.InstructorService) *InstructorHandler {
	return &InstructorHandler{Service: svc}
}

func (h *InstructorHandler) RegisterInstructorHandler(c *gin.Context) {
	var req models.InstructorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	inst, token, err := h.Service.Register(req)
	if err != nil {
		if errors.Is(err, instructor.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "Email already registered", "")
			return
		}
		utils.GetLogger().Error("instructor registration failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register instructor", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"instructor": inst, "token": token})
}

func (h *InstructorHandler) AuthenticateInstructorHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	inst, token, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, instructor.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to authenticate", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"instructor": inst, "token": token})
}

// GetInstructorByIDHandler serves the public discovery profile.
func (h *InstructorHandler) GetInstructorByIDHandler(c *gin.Context) {
	id := c.Param("instructorID")
	profile, err := h.Service.GetPublicProfile(id)
	if err != nil {
		if errors.Is(err, instructor.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Instructor not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch instructor", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"instructor": profile})
}

func (h *InstructorHandler) GetPolicyHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")
	policy, err := h.Service.GetPolicy(instructorID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch cancellation policy", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

func (h *InstructorHandler) UpdatePolicyHandler(c *gin.Context) {
	instructorID := c.GetString("instructorID")

	var policy models.CancellationPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid policy payload", err.Error())
		return
	}

	if err := h.Service.UpdatePolicy(instructorID, policy); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update cancellation policy", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy": policy})
}
