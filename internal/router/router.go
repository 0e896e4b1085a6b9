package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "upkeep/docs"
	"upkeep/internal/handler"
	"upkeep/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	importH *handler.ImportHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
	maxUploadBytes int64,
) *gin.Engine {
	r := gin.New()
	if maxUploadBytes > 0 {
		r.MaxMultipartMemory = maxUploadBytes
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	imports := v1.Group("/vendor-imports")
	imports.POST("", importH.Import)
	imports.POST("/preview", importH.Preview)
	imports.POST("/confirm", importH.Confirm)
	imports.GET("/template", importH.Template)

	return r
}
