// Package middleware provides the Gin middleware stack: panic recovery,
// request IDs, CORS, request logging, the bearer-token authentication gate,
// the ownership check, and the login throttle.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
)

// Recovery returns a middleware that recovers from panics and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apperrors.Internal(fmt.Errorf("panic: %v", err)).ToResponse())
			}
		}()
		c.Next()
	}
}
