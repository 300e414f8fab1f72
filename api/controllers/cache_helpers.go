package controllers

import (
	"context"
	"log/slog"

	"Yatube/api/cache"
	"Yatube/api/middlewares"
)

// invalidatePageCache drops cached pages after post changes; stale pages
// would otherwise expire with their TTL.
func invalidatePageCache(ctx context.Context) {
	if err := cache.DeleteByPrefix(ctx, middlewares.PageCachePrefix); err != nil {
		slog.Warn("cache: invalidation failed", "error", err)
	}
}
