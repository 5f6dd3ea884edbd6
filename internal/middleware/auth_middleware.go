package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ppsociety/membership-backend/internal/config"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/utils"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

const bearerSchema = "Bearer "

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity claims in the context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, role, ok := parseIdentity(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, token missing or invalid",
			})
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

// OptionalAuth stores identity claims when a valid bearer token is present
// and lets the request through either way.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, email, role, ok := parseIdentity(c, cfg); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextUserEmail, email)
			c.Set(ContextUserRole, role)
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers who are not admins. It must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get(ContextUserRole); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's ID from the context.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// CurrentUserRole returns the authenticated caller's role from the context.
func CurrentUserRole(c *gin.Context) string {
	value, _ := c.Get(ContextUserRole)
	role, _ := value.(string)
	return role
}

func parseIdentity(c *gin.Context, cfg *config.Config) (primitive.ObjectID, string, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerSchema) {
		return primitive.NilObjectID, "", "", false
	}

	claims, err := utils.ValidateJWT(authHeader[len(bearerSchema):], cfg)
	if err != nil {
		return primitive.NilObjectID, "", "", false
	}

	sub, _ := claims["sub"].(string)
	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, "", "", false
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return userID, email, role, true
}
