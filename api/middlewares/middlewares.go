package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"Yatube/api/auth"
	"Yatube/api/models"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginURL is where anonymous visitors of gated pages are sent.
const LoginURL = "/auth/login/"

// Authenticate resolves the session token, when present, to a user. It never
// aborts: anonymous requests simply carry no user.
func Authenticate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := auth.ExtractTokenID(c.Request)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).
			Select("id", "username", "is_admin").
			First(&user, userID).Error; err != nil {
			c.Next()
			return
		}

		httpctx.SetUser(c, user.ID, user.Username, user.IsAdmin)
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page, carrying the
// original URI in next.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpctx.IsAuthenticated(c) {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// LoginRedirect builds the login URL for next, keeping slashes readable.
func LoginRedirect(next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return LoginURL + "?next=" + escaped
}

// CORSMiddleware allows credentialed requests from the configured origins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		for _, o := range allowedOrigins {
			if o == origin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", o)
				break
			}
		}

		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, X-CSRF-Token, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
