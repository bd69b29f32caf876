package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chirp/internal/core/apperr"
	"chirp/internal/core/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type fakeResolver struct {
	principals map[string]user.Principal
	err        error
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, token string) (user.Principal, error) {
	if f.err != nil {
		return user.Principal{}, f.err
	}
	p, ok := f.principals[token]
	if !ok {
		return user.Principal{}, apperr.ErrUnauthenticated
	}
	return p, nil
}

type countingRecorder struct {
	routes   []string
	statuses []int
}

func (r *countingRecorder) RecordHTTPRequest(_ string, route string, status int, _ time.Duration) {
	r.routes = append(r.routes, route)
	r.statuses = append(r.statuses, status)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID})
	})
	r.GET("/me", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	resolver := &fakeResolver{principals: map[string]user.Principal{
		"good": {ID: "u-1", Username: "alice", Role: user.RoleUser},
	}}
	r := newEngine(JWTAuthMiddleware(resolver))

	w := do(r, "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u-1"}`, w.Body.String())

	w = do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestJWTAuthMiddleware_ResolverFailure(t *testing.T) {
	r := newEngine(JWTAuthMiddleware(&fakeResolver{err: errors.New("db down")}))

	w := do(r, "anything")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAccessLog_RecordsRoute(t *testing.T) {
	rec := &countingRecorder{}
	r := gin.New()
	r.Use(AccessLog(zap.NewNop(), rec))
	r.GET("/tweets/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tweets/abc", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []string{"/tweets/:id", "unmatched"}, rec.routes)
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNotFound}, rec.statuses)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 2}, zap.NewNop())
	defer rl.Stop()

	r := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)

	w := do(r, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_KeysByPrincipal(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1}, zap.NewNop())
	defer rl.Stop()

	resolver := &fakeResolver{principals: map[string]user.Principal{
		"a": {ID: "u-a"},
		"b": {ID: "u-b"},
	}}
	r := newEngine(JWTAuthMiddleware(resolver), rl.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "a").Code)
	assert.Equal(t, http.StatusOK, do(r, "b").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "a").Code)
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute}, zap.NewNop())
	defer rl.Stop()

	rl.limiter("ip:1.2.3.4")
	require.Equal(t, 1, rl.Len())

	rl.cleanup(time.Now())
	assert.Equal(t, 1, rl.Len())

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.Len())
}
