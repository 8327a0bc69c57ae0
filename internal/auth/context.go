package auth

import "github.com/gin-gonic/gin"

// Actor is the authenticated identity invoking an operation.
// Services receive it explicitly instead of reading ambient request state.
type Actor struct {
	UserID string
	Role   string
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole returns the authenticated user's role or empty string.
func GetRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// CurrentActor builds an Actor from the authenticated request context.
func CurrentActor(c *gin.Context) Actor {
	return Actor{
		UserID: GetUserID(c),
		Role:   GetRole(c),
	}
}
