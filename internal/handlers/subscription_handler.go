package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/services"
)

// SubscriptionHandler handles newsletter subscription HTTP requests
type SubscriptionHandler struct {
	subService *services.SubscriptionService
	logger     *zap.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subService *services.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
		logger:     logger,
	}
}

// Subscribe handles POST /subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	sub, reactivated, err := h.subService.Subscribe(c.Request.Context(), req.Email, req.Source)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if reactivated {
		respond(c, http.StatusOK, "Subscription reactivated successfully", nil)
		return
	}
	respond(c, http.StatusCreated, "Subscribed successfully", gin.H{"subscription": sub})
}

// Unsubscribe handles POST /subscriptions/unsubscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.subService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Unsubscribed successfully", nil)
}

// List handles GET /subscriptions (admin only)
func (h *SubscriptionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	subs, pagination, err := h.subService.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"subscriptions": subs, "pagination": pagination})
}

// UpdatePreferences handles PUT /subscriptions/:id (admin only)
func (h *SubscriptionHandler) UpdatePreferences(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Subscription not found"))
		return
	}

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	sub, err := h.subService.UpdatePreferences(c.Request.Context(), id, req.Preferences)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Subscription preferences updated", gin.H{"subscription": sub})
}
