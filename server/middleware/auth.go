package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/storeapi/auth/authctx"
	"github.com/skillsenselab/storeapi/auth/token"
	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/observability"
)

// TokenVerifier verifies a bearer token string. *token.Service satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// RequireAuth returns a middleware that gates a route group on a valid
// bearer token. On success the verified principal is stored in the request
// context; on any failure the request is aborted with 401 and the failure
// kind is logged and counted, never echoed. metrics may be nil.
func RequireAuth(verifier TokenVerifier, metrics *observability.AuthMetrics) gin.HandlerFunc {
	log := logger.WithComponent("auth")
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.Unauthorized("Authorization header required."))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abort(c, apperrors.Unauthorized("Authorization header must be a Bearer token."))
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			log.Warn("Token verification failed", map[string]interface{}{
				logger.FieldError:    err.Error(),
				logger.FieldClientIP: c.ClientIP(),
			})
			metrics.RecordTokenFailure(c.Request.Context(), tokenFailureKind(err))
			abort(c, apperrors.Unauthorized("Invalid or expired token."))
			return
		}

		principal := authctx.Principal{
			ID:       claims.Subject,
			Username: claims.Username,
		}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireOwner returns a middleware that compares the authenticated
// principal's id against the named route parameter and aborts with 403 on
// mismatch. It must run behind RequireAuth.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := authctx.Get(c.Request.Context())
		if !ok {
			abort(c, apperrors.Unauthorized(""))
			return
		}
		if c.Param(param) != principal.ID {
			abort(c, apperrors.Forbidden())
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}

// tokenFailureKind labels a verification failure for metrics.
func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "signature"
	case errors.Is(err, token.ErrIssuerMismatch):
		return "issuer"
	case errors.Is(err, token.ErrAudienceMismatch):
		return "audience"
	default:
		return "invalid"
	}
}
