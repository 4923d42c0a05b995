package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Deps holds everything the routes need
type Deps struct {
	DB      *gorm.DB
	Recipes service.IRecipeService
	Images  service.ImageStore

	// RateLimit is optional. When nil the API is not rate limited.
	RateLimit gin.HandlerFunc

	// MaxUploadMB bounds the in-memory part of multipart parsing
	MaxUploadMB int64
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()
	if deps.MaxUploadMB > 0 {
		router.MaxMultipartMemory = deps.MaxUploadMB << 20
	}

	router.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(),
	)

	router.GET("/health", api.NewHealthHandler(deps.DB).Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.NewUploadHandler(deps.Images).RegisterRoutes(router)

	v1 := router.Group("/api")
	if deps.RateLimit != nil {
		v1.Use(deps.RateLimit)
	}
	api.NewRecipeHandler(deps.Recipes, deps.Images).RegisterRoutes(v1)

	return router
}
