package rest

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

func NewRouter(logger *slog.Logger, games gameManager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	handler := NewGameHandler(logger, games)

	router.GET("/ping", Ping)

	router.POST("/games", handler.CreateGame)
	router.GET("/games/:id", handler.GetGame)
	router.POST("/games/:id/moves", handler.Play)
	router.POST("/games/:id/jump", handler.JumpTo)
	router.DELETE("/games/:id", handler.EndGame)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		log.Debug("request handled",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
