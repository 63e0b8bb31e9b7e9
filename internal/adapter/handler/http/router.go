package http

import (
	"github.com/adiallo/orderflow/internal/adapter/config"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/adiallo/orderflow/pkg/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	searchHandler *SearchHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))

			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/enums", orderHandler.Enumerations)
			orders.GET("/status/:status", orderHandler.ListOrdersByStatus)

			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
			orders.DELETE("/:id", orderHandler.RemoveOrder)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.PATCH("/:id/local-status", orderHandler.UpdateLocalStatus)

			orders.POST("/:id/payments", paymentHandler.SubmitPayment)
			orders.POST("/:id/payments/confirm", paymentHandler.ConfirmQrPayment)
			orders.GET("/:id/payments", paymentHandler.ListPayments)

			search := orders.Group("/search")
			{
				search.GET("", searchHandler.Search)
				search.GET("/partial", searchHandler.SearchPartial)
				search.GET("/prices-range", searchHandler.PricesRange)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
