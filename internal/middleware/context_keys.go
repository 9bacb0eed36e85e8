package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, checking the request context as a fallback.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		return v.(string), true
	}
	return "", false
}

// GetUserRoleFromContext retrieves the authenticated user's role claim.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userRoleKey)); exists {
		if role, ok := v.(string); ok {
			return role, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userRoleKey); v != nil {
		return v.(string), true
	}
	return "", false
}
