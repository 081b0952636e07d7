package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"travelportal/internal/domain"
	"travelportal/internal/domain/models"
	"travelportal/internal/services"
)

type fakeVerifier map[string]services.Claims

func (f fakeVerifier) Verify(_ context.Context, token string) (services.Claims, error) {
	c, ok := f[token]
	if !ok {
		return services.Claims{}, domain.UnauthorizedError{Msg: "Invalid token"}
	}
	return c, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c), "role": CurrentRequest(c).Role})
	})...)
	return r
}

func get(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	v := fakeVerifier{"good": {UserID: 9, Role: domain.RoleCustomer}}
	r := newEngine(RequireAuth(v))

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer bad"}).Code)

	w := get(r, map[string]string{"Authorization": "bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":9`)
}

func TestOptionalAuthKeepsAnonymous(t *testing.T) {
	r := newEngine(OptionalAuth(fakeVerifier{}))
	w := get(r, map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":0`)
}

func TestRequireRoles(t *testing.T) {
	v := fakeVerifier{
		"cust":  {UserID: 1, Role: domain.RoleCustomer},
		"admin": {UserID: 2, Role: "ADMIN"},
	}
	r := newEngine(RequireAuth(v), RequireRoles(domain.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, get(r, map[string]string{"Authorization": "Bearer cust"}).Code)
	assert.Equal(t, http.StatusOK, get(r, map[string]string{"Authorization": "Bearer admin"}).Code)

	noAuth := newEngine(RequireRoles(domain.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, get(noAuth, nil).Code)
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(NewRateLimiter(2).Middleware())
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRequestIDPassthrough(t *testing.T) {
	r := newEngine()
	w := get(r, map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = get(r, map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	assert.NotEqual(t, strings.Repeat("x", 100), w.Header().Get("X-Request-ID"))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

type countingAuth struct {
	lookups int
	logouts []string
}

func (a *countingAuth) Login(context.Context, string, string) (services.AuthResult, error) {
	return services.AuthResult{}, domain.UnauthorizedError{Msg: "Invalid credentials"}
}

func (a *countingAuth) LoginWithPhone(context.Context, string, string) (services.AuthResult, error) {
	return services.AuthResult{}, domain.UnauthorizedError{Msg: "Invalid credentials"}
}

func (a *countingAuth) Logout(_ context.Context, token string) error {
	a.logouts = append(a.logouts, token)
	return nil
}

func (a *countingAuth) CurrentUser(_ context.Context, token string) (models.User, error) {
	a.lookups++
	return models.User{ID: 9, Email: token + "@example.com"}, nil
}

func TestWithSessionCachesUserPerRequest(t *testing.T) {
	auth := &countingAuth{}
	v := fakeVerifier{"good": {UserID: 9, Role: domain.RoleCustomer}}
	r := newEngine(RequireAuth(v), WithSession(auth), func(c *gin.Context) {
		sess := CurrentSession(c)
		first, err := sess.User(c.Request.Context())
		assert.NoError(t, err)
		again, _ := CurrentSession(c).User(c.Request.Context())
		assert.Same(t, first, again)
		assert.Equal(t, "good", sess.Token())
		assert.NoError(t, sess.Logout(c.Request.Context()))
	})

	assert.Equal(t, http.StatusOK, get(r, map[string]string{"Authorization": "Bearer good"}).Code)
	assert.Equal(t, 1, auth.lookups)
	assert.Equal(t, []string{"good"}, auth.logouts)

	assert.Equal(t, http.StatusOK, get(r, map[string]string{"Authorization": "Bearer good"}).Code)
	assert.Equal(t, 2, auth.lookups)
}

func TestCurrentSessionWithoutMiddlewareIsAnonymous(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		u, err := CurrentSession(c).User(c.Request.Context())
		assert.NoError(t, err)
		assert.Nil(t, u)
		assert.NoError(t, CurrentSession(c).Logout(c.Request.Context()))
	})
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
}
