package api

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/storeapi/auth/throttle"
	"github.com/skillsenselab/storeapi/observability"
	"github.com/skillsenselab/storeapi/server/middleware"
)

// RouterDeps carries everything route registration needs.
type RouterDeps struct {
	Accounts *AccountHandler
	Products *ProductHandler
	Verifier middleware.TokenVerifier
	Limiter  *throttle.Limiter
	Metrics  *observability.AuthMetrics
}

// RegisterRoutes mounts the /api route table.
//
// Anonymous: register, login (throttled), product reads.
// Bearer: user listing, product mutations.
// Bearer plus ownership: single-user read, update, delete.
func RegisterRoutes(engine *gin.Engine, deps RouterDeps) {
	requireAuth := middleware.RequireAuth(deps.Verifier, deps.Metrics)

	api := engine.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", deps.Accounts.Register)
		users.POST("/login", middleware.LoginThrottle(deps.Limiter, deps.Metrics), deps.Accounts.Login)

		users.GET("", requireAuth, deps.Accounts.List)

		owned := users.Group("/:id", requireAuth, middleware.RequireOwner("id"))
		{
			owned.GET("", deps.Accounts.Get)
			owned.PUT("", deps.Accounts.Update)
			owned.DELETE("", deps.Accounts.Delete)
		}
	}

	products := api.Group("/products")
	{
		products.GET("", deps.Products.List)
		products.GET("/:id", deps.Products.Get)

		products.POST("", requireAuth, deps.Products.Create)
		products.PUT("/:id", requireAuth, deps.Products.Update)
		products.DELETE("/:id", requireAuth, deps.Products.Delete)
	}
}
