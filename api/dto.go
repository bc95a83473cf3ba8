// Package api exposes the HTTP surface: request DTOs, handlers, and route
// registration.
package api

import (
	"github.com/skillsenselab/storeapi/account"
)

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the success body of POST /api/users/login.
type LoginResponse struct {
	User  account.Account `json:"user"`
	Token string          `json:"token"`
}

// UpdateAccountRequest is the body of PUT /api/users/:id. Only the username
// can change; credentials are fixed at registration.
type UpdateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// ProductRequest is the body of POST /api/products and PUT /api/products/:id.
// Price is a pointer so an absent field is distinguishable from a free
// product.
type ProductRequest struct {
	Name  string   `json:"name" validate:"required,max=255"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}
