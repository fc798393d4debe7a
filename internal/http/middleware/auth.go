package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain"
)

const (
	sessionKey = "session"
	roleKey    = "userRole"
)

// Authenticator turns a bearer token into the session of an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (domain.Session, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// session for handlers and RequireRoles.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		session, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if !domain.IsUnauthorized(err) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "something went wrong",
					"code":       "internal_error",
					"request_id": GetRequestID(c),
				})
				return
			}
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(sessionKey, session)
		c.Set(roleKey, session.Role)
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireAuth.
func CurrentSession(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return domain.Session{}, false
	}
	s, ok := v.(domain.Session)
	return s, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
