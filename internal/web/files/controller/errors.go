package controller

import (
	"fmt"
	"net/http"

	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"fileserver/internal/web/files/service"
)

// abortWithError classifies err and answers with a small stable payload.
// The raw cause is only leaked into the detail field in debug mode; any
// other client sees the generic message for its class.
func (c *Controller) abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := service.ErrCodeInternal
	message := "internal server error"

	if typed, ok := service.AsError(err); ok {
		code = typed.Code
		message = typed.Message
		switch typed.Code {
		case service.ErrCodeNotFound:
			status = http.StatusNotFound
		case service.ErrCodeLargeFile:
			status = http.StatusRequestEntityTooLarge
		case service.ErrCodeConflict:
			status = http.StatusBadRequest
		case service.ErrCodeUnauthenticated:
			status = http.StatusUnauthorized
		}
	}

	if status >= http.StatusInternalServerError {
		c.logger.Error("request failed",
			zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	}

	detail := ""
	if gconfig.Shared.GetBool("debug") {
		detail = fmt.Sprintf("%+v", err)
	}

	ctx.AbortWithStatusJSON(status, gin.H{
		"detail": gin.H{
			"code":    code,
			"message": message,
			"error":   detail,
		},
	})
}
