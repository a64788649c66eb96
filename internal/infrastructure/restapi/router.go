package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires all HTTP routes: the portfolio/valuation reads, the
// send/receive action intents, wallet session management, prometheus
// metrics and the swagger UI.
func SetupRouter(
	portfolioHandler *PortfolioHandler,
	actionHandler *ActionHandler,
	walletHandler *WalletHandler,
) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/portfolio", portfolioHandler.GetPortfolioHandler)
		v1.POST("/portfolio/refresh", portfolioHandler.RefreshPortfolioHandler)
		v1.GET("/portfolio/valuation", portfolioHandler.GetValuationHandler)
		v1.GET("/portfolio/asset-value", portfolioHandler.GetAssetValueHandler)

		v1.POST("/actions/send", actionHandler.SendHandler)
		v1.POST("/actions/receive", actionHandler.ReceiveHandler)

		v1.POST("/wallet/connect", walletHandler.ConnectHandler)
		v1.POST("/wallet/disconnect", walletHandler.DisconnectHandler)
		v1.GET("/wallet/status", walletHandler.StatusHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")
	swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))

	return router
}
