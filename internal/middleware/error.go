package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string `json:"message"`
}

// Recovery turns a panic in a handler into a JSON 500 response
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.Error().
					Interface("panic", err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
			}
		}()

		c.Next()
	}
}
