package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora-backend/internal/auth"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/models"
)

const userContextKey = "currentUser"

// UserLoader resolves a verified token subject to a full user record.
type UserLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthMiddleware struct {
	tokens *auth.Tokens
	users  UserLoader
	log    *logger.Logger
}

func NewAuthMiddleware(tokens *auth.Tokens, users UserLoader, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, log: log.With("component", "auth")}
}

// RequireAuth verifies the Bearer token and attaches the resolved user record
// to the request context. Downstream handlers pass the user's ID explicitly
// into the cart contract rather than reading ambient state.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		userID, err := am.tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		user, err := am.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			am.log.Warn("token subject has no user record", "userId", userID.Hex())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin allows only admin-role users past. Must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as admin"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
