package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/storeapi/auth/throttle"
	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/observability"
)

// LoginThrottle returns a middleware that counts every request against the
// limiter, keyed by client IP, and rejects with 429 once the window is
// exhausted. The Retry-After header tells the client when the window resets.
// metrics may be nil.
func LoginThrottle(limiter *throttle.Limiter, metrics *observability.AuthMetrics) gin.HandlerFunc {
	log := logger.WithComponent("throttle")
	return func(c *gin.Context) {
		decision := limiter.Admit(c.ClientIP())
		if !decision.Allowed {
			log.Warn("Login attempt throttled", map[string]interface{}{
				logger.FieldClientIP: c.ClientIP(),
				"retry_after":        decision.RetryAfter.String(),
			})
			metrics.RecordThrottleDenial(c.Request.Context())
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())+1))
			abort(c, apperrors.RateLimited(decision.RetryAfter))
			return
		}
		c.Next()
	}
}
