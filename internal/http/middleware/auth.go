package middleware

import (
	"context"
	"net/http"
	"strings"

	"travelportal/internal/domain"
	"travelportal/internal/services"
	"travelportal/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	tokenKey    = "token"
)

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (services.Claims, error)
}

func bearer(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid token and stores userID and
// userRole in the context.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan", "request_id": GetRequestID(c)})
			return
		}
		claims, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if !domain.IsUnauthorized(err) {
				utils.LogError(GetRequestID(c), "auth", "verify", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "request_id": GetRequestID(c)})
			return
		}
		setClaims(c, token, claims)
		c.Next()
	}
}

// OptionalAuth fills the context when a valid token is sent and otherwise
// lets the request through anonymously.
func OptionalAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearer(c); token != "" {
			if claims, err := v.Verify(c.Request.Context(), token); err == nil {
				setClaims(c, token, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, token string, claims services.Claims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(userRoleKey, claims.Role)
	c.Set(tokenKey, token)
}

// CurrentUserID is 0 for anonymous requests.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func CurrentToken(c *gin.Context) string {
	if t := c.GetString(tokenKey); t != "" {
		return t
	}
	return bearer(c)
}

func CurrentRequest(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID: domain.ID(CurrentUserID(c)),
		Role:   c.GetString(userRoleKey),
		Token:  CurrentToken(c),
	}
}
