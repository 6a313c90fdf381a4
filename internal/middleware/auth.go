package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the session key holding the authenticated user's id.
const UserIDKey = "user_id"

// Principal returns the authenticated user's id for this request, if any.
func Principal(c *gin.Context) (uuid.UUID, bool) {
	session := sessions.Default(c)
	raw, ok := session.Get(UserIDKey).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireAuth rejects requests that carry no authenticated principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}
