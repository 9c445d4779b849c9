package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/session"
)

const (
	ContextUserID = "userID"
)

// SessionResolver turns a cookie value into the owning user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

func RequireSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user set by RequireSession.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUserID).(uuid.UUID)
}

func abortUnauthorized(c *gin.Context) {
	httperr.Unauthorized(c, httperr.CodeUnauthorized, httperr.MessageFor(httperr.CodeUnauthorized))
	c.Abort()
}
