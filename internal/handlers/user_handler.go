package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/middleware"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/services"
)

// UserHandler handles member profile HTTP requests
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List handles GET /users (admin only)
func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	users, pagination, err := h.userService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"users": users, "pagination": pagination})
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("Not authorized"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"user": user})
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword handles PUT /users/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Password changed successfully", nil)
}

// DeleteAccount handles DELETE /users/profile
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Account deleted successfully", nil)
}
