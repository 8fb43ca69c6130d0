package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
	"slotify/utils"
)

// RegisterRoutes wires the HTTP surface: availability queries, booking
// lifecycle, and the admin catalog/schedule CRUD.
func RegisterRoutes(router *gin.Engine, bundle *handlers.HandlerBundle) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	api := router.Group("/api")

	avail := api.Group("/availability")
	{
		avail.GET("/day", bundle.Availability.GetDaySlots)
		avail.GET("/month", bundle.Availability.GetMonthSummary)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", bundle.Booking.Create)
		bookings.GET("", bundle.Booking.List)
		bookings.GET("/:id", bundle.Booking.Get)
		bookings.POST("/:id/confirm", bundle.Booking.Confirm)
		bookings.POST("/:id/cancel", bundle.Booking.Cancel)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/services", bundle.Admin.CreateService)
		admin.GET("/services", bundle.Admin.ListServices)
		admin.PUT("/services/:id", bundle.Admin.UpdateService)
		admin.DELETE("/services/:id", bundle.Admin.DeleteService)

		admin.POST("/agents", bundle.Admin.CreateAgent)
		admin.GET("/agents", bundle.Admin.ListAgents)
		admin.PUT("/agents/:id", bundle.Admin.UpdateAgent)
		admin.DELETE("/agents/:id", bundle.Admin.DeleteAgent)
		admin.POST("/agents/:id/services/:serviceId", bundle.Admin.LinkAgentService)
		admin.DELETE("/agents/:id/services/:serviceId", bundle.Admin.UnlinkAgentService)
		admin.GET("/agents/:id/rules", bundle.Admin.ListAgentRules)

		admin.POST("/rules", bundle.Admin.CreateRule)
		admin.DELETE("/rules/:id", bundle.Admin.DeleteRule)

		admin.PUT("/overrides", bundle.Admin.UpsertOverride)
		admin.DELETE("/overrides/:id", bundle.Admin.DeleteOverride)

		admin.POST("/holidays", bundle.Admin.CreateHoliday)
		admin.GET("/holidays", bundle.Admin.ListHolidays)
		admin.DELETE("/holidays/:id", bundle.Admin.DeleteHoliday)
	}
}
