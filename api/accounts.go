package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/storeapi/account"
	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/observability"
	"github.com/skillsenselab/storeapi/server"
	"github.com/skillsenselab/storeapi/util"
	"github.com/skillsenselab/storeapi/validation"
)

// AccountHandler serves the /api/users routes.
type AccountHandler struct {
	accounts *account.Service
	metrics  *observability.AuthMetrics
}

// NewAccountHandler creates the account handler. metrics may be nil.
func NewAccountHandler(accounts *account.Service, metrics *observability.AuthMetrics) *AccountHandler {
	return &AccountHandler{accounts: accounts, metrics: metrics}
}

// Register handles POST /api/users/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.accounts.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.metrics.RecordRegistration(c.Request.Context())
	server.RespondCreated(c, created)
}

// Login handles POST /api/users/login. It runs behind the login throttle.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var appErr *apperrors.AppError
		failed := errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeInvalidCredentials
		h.metrics.RecordLoginAttempt(c.Request.Context(), failed)
		server.RespondWithError(c, err)
		return
	}

	h.metrics.RecordLoginAttempt(c.Request.Context(), false)
	server.RespondOK(c, LoginResponse{User: result.Account, Token: result.Token})
}

// List handles GET /api/users.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, accounts)
}

// Get handles GET /api/users/:id. Ownership is enforced by middleware.
func (h *AccountHandler) Get(c *gin.Context) {
	found, err := h.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, found)
}

// Update handles PUT /api/users/:id. Ownership is enforced by middleware.
func (h *AccountHandler) Update(c *gin.Context) {
	var req UpdateAccountRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	updated, err := h.accounts.UpdateUsername(c.Request.Context(), c.Param("id"), req.Username)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, updated)
}

// Delete handles DELETE /api/users/:id. Ownership is enforced by middleware.
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accounts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// bind decodes the JSON body, sanitizes client-supplied strings, and
// validates the result against the DTO's tags.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Validation("Request body must be valid JSON.")
	}
	switch req := dst.(type) {
	case *RegisterRequest:
		req.Username = util.SanitizeString(req.Username)
	case *LoginRequest:
		req.Username = util.SanitizeString(req.Username)
	case *UpdateAccountRequest:
		req.Username = util.SanitizeString(req.Username)
	case *ProductRequest:
		req.Name = util.SanitizeString(req.Name)
	}
	return validation.Validate(dst)
}
