// Package web gin server
package web

import (
	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"fileserver/internal/web/files/controller"
	"fileserver/library/log"
)

var server = gin.New()

// RunServer mounts the files API and blocks serving it.
func RunServer(addr string, ctrl *controller.Controller) {
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := ginMw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	server.Any("/health", ctrl.Health)

	v1 := server.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", ctrl.Register)
	users.POST("/auth", ctrl.Auth)
	users.GET("/status", ctrl.AuthRequired(), ctrl.Status)

	files := v1.Group("/files", ctrl.AuthRequired())
	files.POST("/upload", ctrl.Upload)
	files.GET("/list", ctrl.List)
	files.GET("/download", ctrl.Download)
	files.GET("/search", ctrl.Search)
	files.GET("/revisions", ctrl.Revisions)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}
