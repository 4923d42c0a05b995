package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AllowedOrigin is the single frontend permitted to call the API cross-origin.
// It is intentionally not configurable.
const AllowedOrigin = "https://taradeshpande.com"

// CORS middleware to handle cross-origin requests. The Authorization header
// is accepted but nothing in the server checks it.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{AllowedOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	})
}
