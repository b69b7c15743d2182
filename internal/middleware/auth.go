package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/chasonjia/familytree/internal/models"
	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/chasonjia/familytree/internal/services"
	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// AuthRequired resolves the bearer token to an account row and attaches it
// to the request context
func AuthRequired(credService *services.CredentialService, userRepo *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		credentialID, err := credService.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := userRepo.GetByID(credentialID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole restricts a route to accounts with the given role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Insufficient privileges"})
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated account from the request context
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}

	if user, ok := value.(*models.User); ok {
		return user
	}
	return nil
}
