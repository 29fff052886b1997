package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DataDir))

	h := newCartHandlers(deps.CartSvc)
	carts := router.Group("/carts/:sessionId")
	carts.GET("", h.getCart)
	carts.DELETE("", h.clearCart)
	carts.POST("/line-items", h.addLineItem)
	carts.PATCH("/line-items/:lineId", h.updateLineItemQuantity)
	carts.DELETE("/line-items/:lineId", h.removeLineItem)

	return router
}
