package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/auth"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/config"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/handler"
)

type fakeLimiter struct {
	count int64
	err   error
}

func (f *fakeLimiter) IncrementWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.count++
	return f.count, nil
}

func newLimiterApp(limiter rateLimiter, perMinute int, enabled bool) *application {
	return &application{
		Limiter: limiter,
		Logger:  zap.NewNop(),
		Config: &config.Config{
			Limiter: config.RateLimiterConfig{PerMinute: perMinute, Enabled: enabled},
		},
		Handler: &handler.Handler{},
	}
}

func newLimiterRouter(app *application, claims *auth.UserClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("claims", claims)
		}
		c.Next()
	})
	r.POST("/generate", app.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doLimited(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_overLimitRejected(t *testing.T) {
	app := newLimiterApp(&fakeLimiter{}, 2, true)
	r := newLimiterRouter(app, &auth.UserClaims{UserID: uuid.New(), Email: "tester@example.com"})

	require.Equal(t, http.StatusOK, doLimited(r).Code)
	require.Equal(t, http.StatusOK, doLimited(r).Code)
	require.Equal(t, http.StatusTooManyRequests, doLimited(r).Code)
}

func TestRateLimitMiddleware_noopWithoutRedis(t *testing.T) {
	app := newLimiterApp(nil, 1, true)
	r := newLimiterRouter(app, &auth.UserClaims{UserID: uuid.New(), Email: "tester@example.com"})

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, doLimited(r).Code)
	}
}

func TestRateLimitMiddleware_noopWhenDisabled(t *testing.T) {
	app := newLimiterApp(&fakeLimiter{}, 1, false)
	r := newLimiterRouter(app, &auth.UserClaims{UserID: uuid.New(), Email: "tester@example.com"})

	require.Equal(t, http.StatusOK, doLimited(r).Code)
	require.Equal(t, http.StatusOK, doLimited(r).Code)
}

func TestRateLimitMiddleware_limiterErrorDoesNotBlock(t *testing.T) {
	app := newLimiterApp(&fakeLimiter{err: errors.New("redis: connection refused")}, 1, true)
	r := newLimiterRouter(app, &auth.UserClaims{UserID: uuid.New(), Email: "tester@example.com"})

	require.Equal(t, http.StatusOK, doLimited(r).Code)
	require.Equal(t, http.StatusOK, doLimited(r).Code)
}

func TestRateLimitMiddleware_missingClaims(t *testing.T) {
	app := newLimiterApp(&fakeLimiter{}, 2, true)
	r := newLimiterRouter(app, nil)

	require.Equal(t, http.StatusUnauthorized, doLimited(r).Code)
}
