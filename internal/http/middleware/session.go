package middleware

import (
	"travelportal/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// WithSession menaruh services.Session per request di context. Pasang setelah
// RequireAuth atau OptionalAuth supaya token yang dipakai sudah diverifikasi.
func WithSession(auth services.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := auth
		if svc, ok := a.(services.AuthService); ok {
			svc.RequestID = GetRequestID(c)
			a = svc
		}
		c.Set(sessionKey, services.NewSession(a, c.GetString(tokenKey)))
		c.Next()
	}
}

// CurrentSession returns the request session; without WithSession it is anonymous.
func CurrentSession(c *gin.Context) *services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*services.Session); ok {
			return s
		}
	}
	return services.NewSession(nil, "")
}
