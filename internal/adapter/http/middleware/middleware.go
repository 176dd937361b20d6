package middleware

import (
	"net/http"
	"time"

	"weedhaven-storefront/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// SessionCookie carries the signed guest session token.
	SessionCookie = "whs_session"

	// CtxSessionID is the gin context key for the resolved session id.
	CtxSessionID = "session_id"
)

// GuestSession resolves the caller's session. A valid session cookie is
// reused; a missing, expired or tampered cookie is silently replaced with a
// fresh anonymous session. There are no accounts, so this never rejects a
// request.
func GuestSession(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if sessionID, err := tokenSvc.Validate(raw); err == nil {
				c.Set(CtxSessionID, sessionID.String())
				c.Next()
				return
			}
		}

		sessionID := uuid.New()
		token, expiresAt, err := tokenSvc.Generate(sessionID)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error_code": "SYS_001",
				"message":    "Internal server error",
			})
			return
		}

		maxAge := int(time.Until(expiresAt).Seconds())
		c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
		c.Set(CtxSessionID, sessionID.String())
		c.Next()
	}
}

// SessionID returns the session id resolved by GuestSession.
func SessionID(c *gin.Context) string {
	return c.GetString(CtxSessionID)
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error and the
// request is rejected with 413 Payload Too Large.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
