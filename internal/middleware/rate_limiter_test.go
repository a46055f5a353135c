package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCooldownLimiter_Check(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewCooldownLimiter()
	l.now = func() time.Time { return now }

	assert.True(t, l.Check("k", time.Minute).Allowed)

	now = now.Add(20 * time.Second)
	res := l.Check("k", time.Minute)
	assert.False(t, res.Allowed)
	assert.Equal(t, 40*time.Second, res.RetryAfter)

	// 不同 key 互不影响
	assert.True(t, l.Check("other", time.Minute).Allowed)

	now = now.Add(time.Minute)
	assert.True(t, l.Check("k", time.Minute).Allowed)

	l.Reset("k")
	assert.True(t, l.Check("k", time.Minute).Allowed)
}

func TestCooldownLimiter_PurgeIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewCooldownLimiter()
	l.now = func() time.Time { return now }

	l.Check("a", time.Second)
	now = now.Add(time.Hour)
	l.Check("b", time.Second)

	assert.Equal(t, 1, l.PurgeIdle(10*time.Minute))
}

func TestCooldownByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", CooldownByIP(NewCooldownLimiter(), "login", time.Hour), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "操作过于频繁")
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "操作过于频繁，请 5 秒后重试", formatRetryMessage(4500*time.Millisecond))
	assert.Equal(t, "操作过于频繁，请 3 分钟后重试", formatRetryMessage(2*time.Minute+10*time.Second))
}
