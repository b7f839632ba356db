package controller

import (
	"encoding/json"
	"net/http"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"fileserver/library/db/redis"
)

// cacheTTL is how long read endpoints may serve a stale listing.
const cacheTTL = 5 * time.Minute

// cachedJSON answers from the cache when the key is warm; otherwise it
// invokes fetch, stores the marshalled result and answers with it. Cache
// failures are logged and never fail the request, the store must stay
// reachable even when the cache is not.
func (c *Controller) cachedJSON(ctx *gin.Context, key string, fetch func() (any, error)) {
	if c.cache != nil {
		raw, err := c.cache.Get(ctx.Request.Context(), key)
		if err == nil {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			c.logger.Warn("cache get", zap.String("key", key), zap.Error(err))
		}
	}

	result, err := fetch()
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		c.abortWithError(ctx, errors.Wrap(err, "marshal response"))
		return
	}

	if c.cache != nil {
		if err = c.cache.Set(ctx.Request.Context(), key, raw, cacheTTL); err != nil {
			c.logger.Warn("cache set", zap.String("key", key), zap.Error(err))
		}
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
