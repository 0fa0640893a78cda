package restapi

import (
	"net/http"
	"strings"

	"pnl_tracker/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const swaggerSpecRoute = "/docs/swagger.yaml"

// SetupRouter builds the gin engine with middleware, API routes, health, metrics and Swagger UI.
func SetupRouter(portfolioHandler *PortfolioHandler, cfg *configloader.Config, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), ZapLogger(zapLogger.Named("HTTP")))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
	}))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/portfolio-summary", portfolioHandler.PostPortfolioSummaryHandler)
		apiV1.POST("/today-transactions", portfolioHandler.PostTodayTransactionsHandler)
		apiV1.GET("/wallets/:walletAddress/portfolio", portfolioHandler.GetWalletPortfolioHandler)
		apiV1.GET("/wallets/:walletAddress/today", portfolioHandler.GetWalletTodayHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "chain": cfg.Chain.Identifier})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Swagger.Enabled {
		router.StaticFile(swaggerSpecRoute, cfg.Swagger.SpecFile)
		swaggerURL := ginSwagger.URL(swaggerSpecRoute)
		path := "/" + strings.Trim(cfg.Swagger.Path, "/") + "/*any"
		router.GET(path, ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
