package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/apperrors"
)

// respond writes the success envelope
func respond(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps an error onto the failure envelope. Internal errors are
// logged and reported with a generic message; everything else surfaces its
// own message, plus field messages for validation failures.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := apperrors.As(err)

	if appErr.Kind == apperrors.KindInternal && logger != nil {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", c.GetString("RequestID")),
			zap.Error(appErr),
		)
	}

	body := gin.H{
		"success": false,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	c.JSON(apperrors.HTTPStatus(appErr), body)
}

// respondBindingError reports a request-body binding failure
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  []string{err.Error()},
	})
}

// parsePagination reads the page/limit query parameters with defaults
func parsePagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}
