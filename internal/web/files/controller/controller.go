// Package controller exposes the files API over gin.
package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-gonic/gin"

	"fileserver/internal/web/files/model"
	"fileserver/internal/web/files/service"
	"fileserver/library/jwt"
	"fileserver/library/log"
)

const ctxKeyUser = "files_user"

// Cache is the optional read-through byte cache behind the list
// endpoints. library/db/redis.DB implements it; a miss is reported as
// redis.ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Controller holds the HTTP handlers for the files API. The cache is
// optional; a nil cache disables the read-through layer without touching
// the core.
type Controller struct {
	svc    *service.Service
	jwt    *jwt.JWT
	cache  Cache
	logger logSDK.Logger
}

// New constructs the controller.
func New(svc *service.Service, tokenizer *jwt.JWT, cache Cache) *Controller {
	return &Controller{
		svc:    svc,
		jwt:    tokenizer,
		cache:  cache,
		logger: log.Logger.Named("files_controller"),
	}
}

// AuthRequired parses the bearer token, loads the user it names and
// injects it into the request context.
func (c *Controller) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.abortWithError(ctx, service.NewError(service.ErrCodeUnauthenticated, "not authenticated"))
			return
		}

		claims, err := c.jwt.Parse(token)
		if err != nil {
			c.abortWithError(ctx, service.NewError(service.ErrCodeUnauthenticated, "not authenticated"))
			return
		}

		user, err := c.svc.UserByName(ctx.Request.Context(), claims.Subject)
		if err != nil {
			c.abortWithError(ctx, err)
			return
		}

		ctx.Set(ctxKeyUser, user)
		ctx.Next()
	}
}

// userFromCtx returns the authenticated user the middleware stored.
func userFromCtx(ctx *gin.Context) (*model.User, bool) {
	value, ok := ctx.Get(ctxKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// currentUser aborts with UNAUTHENTICATED when no user is attached.
func (c *Controller) currentUser(ctx *gin.Context) (*model.User, bool) {
	user, ok := userFromCtx(ctx)
	if !ok || user == nil {
		c.abortWithError(ctx, service.NewError(service.ErrCodeUnauthenticated, "not authenticated"))
		return nil, false
	}
	return user, true
}

// Health answers liveness probes.
func (c *Controller) Health(ctx *gin.Context) {
	ctx.String(http.StatusOK, "hello, world")
}
