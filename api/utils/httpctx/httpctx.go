package httpctx

import "github.com/gin-gonic/gin"

const (
	userIDKey   = "userID"
	usernameKey = "username"
	isAdminKey  = "isAdmin"
)

// SetUser stores the authenticated user on the request context.
func SetUser(c *gin.Context, id uint, username string, isAdmin bool) {
	c.Set(userIDKey, id)
	c.Set(usernameKey, username)
	c.Set(isAdminKey, isAdmin)
}

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok && uid != 0
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}

func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentUserID(c)
	return ok
}

// IsAdminRequest indicates whether the current request is from an admin.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get(isAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
