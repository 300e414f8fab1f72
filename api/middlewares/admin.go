package middlewares

import (
	"net/http"

	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware lets through authenticated admins only. Anonymous
// requests go to the login page.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !httpctx.IsAuthenticated(c) {
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		if httpctx.IsAdminRequest(c) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
