package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured front-end origins. The X-Request-ID and
// Content-Disposition headers are exposed so downloads keep their file name.
func CORS(origins []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = origins
	conf.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	conf.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", requestIDHeader}
	conf.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	conf.AllowCredentials = true
	conf.MaxAge = 24 * time.Hour
	return cors.New(conf)
}
