package middlewares

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// Sentry reports panics and errors attached with c.Error. Panics are
// re-raised for gin's recovery to answer.
func Sentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)

		defer func() {
			if r := recover(); r != nil {
				hub.RecoverWithContext(c.Request.Context(), r)
				panic(r)
			}
		}()

		c.Next()

		for _, e := range c.Errors {
			hub.CaptureException(e.Err)
		}
	}
}
