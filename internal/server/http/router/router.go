package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/backoffice/internal/config"
	"github.com/polkiloo/backoffice/internal/notify"
	"github.com/polkiloo/backoffice/internal/server/http/handlers"
	"github.com/polkiloo/backoffice/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade handlers.BackofficeFacade
	Hub    *notify.Hub
	Config *config.Config
	Logger *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(cors.New(corsConfig(p.Config.CORSOrigins)))
	engine.Use(middleware.DecompressRequest(p.Config.MaxUploadSize))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(p.Facade, p.Config.MaxUploadSize)
	pipelineHandler := handlers.NewPipelineHandler(p.Facade, p.Config.MaxUploadSize)
	healthHandler := handlers.NewHealthHandler(p.Facade)

	engine.GET("/ws", p.Hub.Handler(p.Facade))

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))

	orders := authed.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Add)
	orders.DELETE("", orderHandler.Delete)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.GET("/:id/actions", orderHandler.Actions)
	orders.PUT("/:id/status", orderHandler.ChangeStatus)
	orders.GET("/:id/comments", orderHandler.Comments)
	orders.POST("/:id/comments", orderHandler.AddComment)
	orders.GET("/:id/files", orderHandler.Files)
	orders.POST("/:id/files", orderHandler.AddFile)

	pipelines := authed.Group("/pipelines")
	pipelines.GET("", pipelineHandler.List)
	pipelines.POST("", pipelineHandler.Add)
	pipelines.GET("/:id", pipelineHandler.Get)
	pipelines.PUT("/:id", pipelineHandler.Update)
	pipelines.GET("/:id/actions", pipelineHandler.Actions)
	pipelines.PUT("/:id/status", pipelineHandler.ChangeStatus)
	pipelines.POST("/:id/comments", pipelineHandler.AddComment)
	pipelines.POST("/:id/files", pipelineHandler.AddFile)
	pipelines.PUT("/:id/additional-info", pipelineHandler.UpdateAdditionalInfo)

	return engine
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Content-Encoding", "Authorization", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
