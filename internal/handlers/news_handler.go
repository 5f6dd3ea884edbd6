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

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	newsService *services.NewsService
	logger      *zap.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService *services.NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
		logger:      logger,
	}
}

// List handles GET /news
func (h *NewsHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := repositories.NewsFilter{
		Status: c.DefaultQuery("status", string(models.NewsStatusPublished)),
		Search: c.Query("search"),
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = category
	}

	news, pagination, err := h.newsService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"news": news, "pagination": pagination})
}

// Get handles GET /news/:id; fetching an article counts a view
func (h *NewsHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("News article not found"))
		return
	}

	news, err := h.newsService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"news": news})
}

// Create handles POST /news
func (h *NewsHandler) Create(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("Not authorized"))
		return
	}

	news, err := h.newsService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "News article created successfully", gin.H{"news": news})
}

// Update handles PUT /news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("News article not found"))
		return
	}

	var req models.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	news, err := h.newsService.Update(c.Request.Context(), userID, middleware.CurrentUserRole(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "News article updated successfully", gin.H{"news": news})
}

// Delete handles DELETE /news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("News article not found"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	if err := h.newsService.Delete(c.Request.Context(), userID, middleware.CurrentUserRole(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "News article deleted successfully", nil)
}

// ToggleLike handles POST /news/:id/like
func (h *NewsHandler) ToggleLike(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("News article not found"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	result, err := h.newsService.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "News article unliked"
	if result.Liked {
		message = "News article liked"
	}
	respond(c, http.StatusOK, message, gin.H{
		"liked":     result.Liked,
		"likeCount": result.LikeCount,
	})
}

// AddComment handles POST /news/:id/comments
func (h *NewsHandler) AddComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.NotFound("News article not found"))
		return
	}

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	comment, err := h.newsService.AddComment(c.Request.Context(), id, userID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Comment added successfully", gin.H{"comment": comment})
}
