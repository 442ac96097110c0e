package router

import (
	"github.com/gin-gonic/gin"

	"cvforge/internal/handler"
	"cvforge/internal/middleware"
)

// New builds the gin engine with all routes and middleware wired.
func New(
	healthHandler *handler.HealthHandler,
	cvHandler *handler.CVHandler,
	aiHandler *handler.AIHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	{
		cvs := v1.Group("/cvs")
		{
			cvs.POST("", cvHandler.Upload)
			cvs.GET("", cvHandler.List)
			cvs.GET("/export", cvHandler.Export)
			cvs.GET("/:id", cvHandler.Get)
			cvs.PUT("/:id/data", cvHandler.UpdateData)
			cvs.DELETE("/:id", cvHandler.Delete)
			cvs.GET("/:id/download", cvHandler.Download)
		}

		ai := v1.Group("/ai")
		{
			ai.POST("/transform", aiHandler.Transform)
			ai.GET("/status", aiHandler.Status)
		}
	}

	return r
}
