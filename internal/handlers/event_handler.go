package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/middleware"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
	"github.com/ppsociety/membership-backend/internal/services"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *services.EventService
	logger       *zap.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *services.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repositories.EventFilter{
		Status:   c.DefaultQuery("status", string(models.EventStatusPublished)),
		Upcoming: c.Query("upcoming") == "true",
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = category
	}
	if eventType := c.Query("eventType"); eventType != "" && eventType != "all" {
		filter.EventType = eventType
	}

	events, pagination, err := h.eventService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"events": events, "pagination": pagination})
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"event": event})
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("Not authorized"))
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Event created successfully", gin.H{"event": event})
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	event, err := h.eventService.Update(c.Request.Context(), userID, middleware.CurrentUserRole(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Event updated successfully", gin.H{"event": event})
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.eventService.Delete(c.Request.Context(), userID, middleware.CurrentUserRole(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Event deleted successfully", nil)
}

// Register handles POST /events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := h.eventService.Register(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Successfully registered for event", gin.H{
		"registrationCount": result.RegistrationCount,
		"availableSpots":    result.AvailableSpots,
	})
}

// CancelRegistration handles DELETE /events/:id/register
func (h *EventHandler) CancelRegistration(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := h.eventService.CancelRegistration(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Registration cancelled successfully", gin.H{
		"registrationCount": result.RegistrationCount,
		"availableSpots":    result.AvailableSpots,
	})
}

// UpdateAttendance handles PUT /events/:id/registrations/:userId
func (h *EventHandler) UpdateAttendance(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Event not found"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("Registration not found"))
		return
	}

	var req models.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.eventService.UpdateAttendance(c.Request.Context(), userID, middleware.CurrentUserRole(c), id, targetID, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Registration updated successfully", nil)
}
