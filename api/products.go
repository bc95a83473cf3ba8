package api

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/storeapi/product"
	"github.com/skillsenselab/storeapi/server"
	"github.com/skillsenselab/storeapi/util"
)

// ProductHandler serves the /api/products routes.
type ProductHandler struct {
	products *product.Service
}

// NewProductHandler creates the product handler.
func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	found, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, found)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.products.Create(c.Request.Context(), req.Name, util.Deref(req.Price))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, created)
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	updated, err := h.products.Update(c.Request.Context(), c.Param("id"), req.Name, util.Deref(req.Price))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, updated)
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
