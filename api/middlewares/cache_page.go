package middlewares

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"Yatube/api/cache"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// PageCachePrefix namespaces cached responses in redis.
const PageCachePrefix = "page:"

type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCacheKey keys a response by representation and request URI.
func PageCacheKey(r *http.Request) string {
	format := "json"
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		format = "html"
	}
	return PageCachePrefix + format + ":" + r.URL.RequestURI()
}

// CachePage serves anonymous GET requests from redis for ttl. Only 200
// responses are stored.
func CachePage(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || httpctx.IsAuthenticated(c) || ttl <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := PageCacheKey(c.Request)
		raw, hit, err := cache.Get(ctx, key)
		if err != nil {
			slog.Warn("cache: read failed", "key", key, "error", err)
		}
		if hit {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
			_ = cache.Delete(ctx, key)
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()

		if rec.Status() != http.StatusOK {
			return
		}
		encoded, err := json.Marshal(cachedPage{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := cache.Set(ctx, key, encoded, ttl); err != nil {
			slog.Warn("cache: write failed", "key", key, "error", err)
		}
	}
}
