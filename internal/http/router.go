package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, wsHandler *WSHandler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", handler.getProfile)
		protected.PUT("/me", handler.updateProfile)

		protected.GET("/vehicle-types", handler.listVehicleTypes)
		protected.GET("/vehicles", handler.listMyVehicles)
		protected.POST("/vehicles", handler.registerVehicle)
		protected.GET("/trucks/available", handler.listAvailableTrucks)

		protected.POST("/pricing/estimate", handler.estimatePrice)

		protected.GET("/orders", handler.listOrders)
		protected.POST("/orders", handler.createOrder)
		protected.GET("/orders/:id", handler.getOrder)
		protected.PUT("/orders/:id/status", handler.updateOrderStatus)
		protected.POST("/orders/:id/assign", handler.assignTruck)
		protected.GET("/orders/:id/history", handler.listOrderHistory)
		protected.GET("/orders/:id/payments", handler.listPayments)
		protected.POST("/orders/:id/payments", handler.createPayment)
		protected.POST("/orders/:id/rating", handler.submitRating)

		protected.PUT("/drivers/location", handler.updateDriverLocation)

		protected.GET("/notifications", handler.listNotifications)
		protected.PUT("/notifications/:id/read", handler.markNotificationRead)

		protected.GET("/tickets", handler.listTickets)
		protected.POST("/tickets", handler.createTicket)
		protected.GET("/tickets/:id", handler.getTicket)
		protected.POST("/tickets/:id/messages", handler.postTicketMessage)
		protected.PUT("/tickets/:id/status", handler.updateTicketStatus)

		protected.GET("/dashboard/stats", handler.dashboardStats)

		protected.GET("/ws/orders/:id", wsHandler.subscribeOrder)
		protected.GET("/ws/trucks/:id", wsHandler.subscribeTruck)
	}

	return router
}
