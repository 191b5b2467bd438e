package middleware

import (
	"net/http/httptest"
	"testing"

	"travelorbit/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestClientIPResolution(t *testing.T) {
	c := newTestContext(t)
	c.Request.RemoteAddr = "10.0.0.9:5412"
	assert.Equal(t, "10.0.0.9", clientIP(c), "socket address with the port stripped")

	c.Request.Header.Set("X-Real-IP", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", clientIP(c))

	c.Request.Header.Set("X-Forwarded-For", " 1.2.3.4 , 5.6.7.8")
	assert.Equal(t, "1.2.3.4", clientIP(c), "first forwarded hop wins")

	bare := newTestContext(t)
	bare.Request.RemoteAddr = "10.0.0.9"
	assert.Equal(t, "10.0.0.9", clientIP(bare))
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 2

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	call := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, 200, call().Code)
	require.Equal(t, 200, call().Code)

	w := call()
	assert.Equal(t, 429, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}
