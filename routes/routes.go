package routes

import (
	"net/http"
	"time"

	"homesweethome/handlers"
	"homesweethome/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes mounts the GraphQL endpoint.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api", hb.GraphQLHandler)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// The browser client sends the session cookie, so CORS is limited to its
// origin with credentials allowed.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, clientOrigin string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", auth.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAPIRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
