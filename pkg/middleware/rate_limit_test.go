package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(rps, burst))
	r.POST("/ask", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func fire(r *gin.Engine, clientIP string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", nil)
	req.Header.Set("X-Forwarded-For", clientIP)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	r := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := fire(r, "10.1.0.1")
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	r := limitedRouter(0.001, 2)

	fire(r, "10.1.0.2")
	fire(r, "10.1.0.2")
	w := fire(r, "10.1.0.2")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	r := limitedRouter(0.001, 1)

	require.Equal(t, http.StatusOK, fire(r, "10.1.0.3").Code)
	require.Equal(t, http.StatusTooManyRequests, fire(r, "10.1.0.3").Code)

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, fire(r, "10.1.0.4").Code)
}
