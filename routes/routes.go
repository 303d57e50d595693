package routes

import (
	"net/http"
	"time"

	"runway/handlers"
	"runway/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRunwayRoutes registers the reservation store endpoints.
func RegisterRunwayRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/runway")
	{
		api.POST("/reservations", hb.RequestReservation)
		api.GET("/reservations", hb.ListReservations)
		api.GET("/reservations/:time", hb.SearchReservation)
		api.GET("/reservations/:time/rank", hb.GetRank)

		api.POST("/land", hb.Land)
		api.GET("/max", hb.GetMax)
		api.GET("/min", hb.GetMin)
		api.GET("/next", hb.GetNext)

		api.GET("/audit", hb.GetAudit)
		api.GET("/events", hb.StreamEvents)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Runway reservation service",
			"backends": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterRunwayRoutes(r, hb)
}
