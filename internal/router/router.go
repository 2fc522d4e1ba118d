package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jwlee/aptgap-backend/config"
	"github.com/jwlee/aptgap-backend/internal/app/controller"
	"github.com/jwlee/aptgap-backend/internal/middleware"
)

type Router struct {
	importController  *controller.ImportController
	listingController *controller.ListingController
	summaryController *controller.SummaryController
	config            *config.Config
}

func NewRouter(
	importController *controller.ImportController,
	listingController *controller.ListingController,
	summaryController *controller.SummaryController,
	cfg *config.Config,
) *Router {
	return &Router{
		importController:  importController,
		listingController: listingController,
		summaryController: summaryController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "APTGAP API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		imports := v1.Group("/imports")
		{
			imports.POST("", r.importController.ImportPayload)
		}

		complexes := v1.Group("/complexes")
		{
			complexes.GET("", r.listingController.GetComplexes)
			complexes.GET("/:no/listings", r.listingController.GetListings)
			complexes.GET("/:no/summary", r.summaryController.GetSummary)
			complexes.GET("/:no/history", r.summaryController.GetHistory)
			complexes.GET("/:no/price-change", r.summaryController.GetPriceChange)
			complexes.GET("/:no/report", r.summaryController.DownloadReport)
		}
	}

	return router
}
