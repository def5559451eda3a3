package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/auth"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/cache"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/response"
)

// rateLimiter is the counter the rate limit middleware runs on.
type rateLimiter interface {
	IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyClaimsFromAuthHeader(c, app.Handler.TokenMaker)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		// the user may have been deleted since the token was issued
		if _, err := app.Repository.GetUserByID(c.Request.Context(), claims.UserID); err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// RateLimitMiddleware caps generation requests per user per minute. It is a
// no-op when redis is not configured or limiting is disabled.
func (app *application) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.Limiter == nil || !app.Config.Limiter.Enabled {
			c.Next()
			return
		}

		claims := app.Handler.GetClaimsFromContext(c)
		if claims == nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		count, err := app.Limiter.IncrementWithExpiry(c.Request.Context(), cache.RateLimitKey(claims.UserID), cache.RateLimitWindowTTL)
		if err != nil {
			app.Logger.Error("failed to check rate limit", zap.String("user_id", claims.UserID.String()), zap.Error(err))
			c.Next()
			return
		}

		if count > int64(app.Config.Limiter.PerMinute) {
			app.Logger.Warn("rate limit exceeded",
				zap.String("user_id", claims.UserID.String()),
				zap.Int64("count", count),
			)
			response.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

func verifyClaimsFromAuthHeader(c *gin.Context, tokenMaker *auth.JWTMaker) (*auth.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	fields := strings.Fields(authHeader)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("invalid authorization header")
	}

	claims, err := tokenMaker.VerifyToken(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}
