package controller

import (
	"fmt"
	"net/http"
	"strconv"

	errors "github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"fileserver/internal/web/files/model"
	"fileserver/internal/web/files/service"
	"fileserver/library/db/redis"
)

const defaultListLimit = 100

// Upload stores the multipart `file` under the logical `path`.
func (c *Controller) Upload(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		c.abortWithError(ctx, errors.Wrap(err, "read multipart file"))
		return
	}

	upload, err := header.Open()
	if err != nil {
		c.abortWithError(ctx, errors.Wrap(err, "open multipart file"))
		return
	}
	defer upload.Close()

	file, err := c.svc.Save(ctx.Request.Context(), user, ctx.Query("path"), upload, header.Filename)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, file)
}

// List returns a page of the user's files, cached per user and page.
func (c *Controller) List(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	limit := intQuery(ctx, "limit", defaultListLimit)
	offset := intQuery(ctx, "offset", 0)

	key := redis.KeyFileList(user.ID.String(), limit, offset)
	c.cachedJSON(ctx, key, func() (any, error) {
		return c.svc.List(ctx.Request.Context(), user, limit, offset)
	})
}

// Download streams a zip of the file or directory subtree at `path`.
func (c *Controller) Download(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	result, err := c.svc.Fetch(ctx.Request.Context(), user, ctx.Query("path"))
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	archive, err := c.svc.Archive(result)
	if err != nil {
		c.abortWithError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s", service.ArchiveName))
	ctx.Data(http.StatusOK, service.ArchiveContentType, archive)
}

// Search filters the user's files, cached per query shape.
func (c *Controller) Search(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	path := ctx.Query("path")
	extension := ctx.Query("extension")
	orderBy := model.FileOrderBy(ctx.DefaultQuery("order_by", string(model.OrderByCreatedAt)))
	limit := intQuery(ctx, "limit", defaultListLimit)

	key := redis.KeyFileSearch(user.ID.String(), path, extension, string(orderBy), limit)
	c.cachedJSON(ctx, key, func() (any, error) {
		matches, err := c.svc.Search(ctx.Request.Context(), user, path, extension, orderBy, limit)
		if err != nil {
			return nil, err
		}
		return gin.H{"matches": matches}, nil
	})
}

// Revisions lists the revision history of one file, cached per query.
func (c *Controller) Revisions(ctx *gin.Context) {
	user, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	path := ctx.Query("path")
	limit := intQuery(ctx, "limit", defaultListLimit)

	key := redis.KeyFileRevisions(user.ID.String(), path, limit)
	c.cachedJSON(ctx, key, func() (any, error) {
		return c.svc.Revisions(ctx.Request.Context(), user, path, limit)
	})
}

// intQuery parses an integer query parameter with a fallback.
func intQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
