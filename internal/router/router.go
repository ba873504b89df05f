package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/neko-jpg/boutique-agent-extension/internal/middleware"
	"github.com/neko-jpg/boutique-agent-extension/internal/watchlist"
)

// New assembles the control API. Liveness reported by /health covers the
// HTTP surface only, not the poller or the catalog facade.
func New(watchlistHandler *watchlist.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/watchlist", watchlistHandler.AddProduct())
	r.GET("/watchlist", watchlistHandler.ListProducts())

	return r
}
