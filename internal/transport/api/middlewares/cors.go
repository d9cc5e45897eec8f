package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// DefaultCORSOptions lets the dashboard call the API from any origin and read the export file name.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}
}

// CORS runs the cors handler in front of the gin chain. Preflight requests stop here with 204.
func CORS(opts cors.Options) gin.HandlerFunc {
	handler := cors.New(opts)
	return func(c *gin.Context) {
		passed := false
		handler.Handler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
