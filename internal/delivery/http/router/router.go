// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"sliceco/internal/delivery/http/middleware"
	"sliceco/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	SessionHandler  *handler.SessionHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	sessionHandler  *handler.SessionHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		sessionHandler:  params.SessionHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account and session entry points are open; everything else requires a
	// valid session token.
	e.POST("/users", r.accountHandler.Register)
	e.POST("/tokens", r.sessionHandler.Issue)

	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/:id", r.accountHandler.Get)
		userGroup.PUT("/:id", r.accountHandler.Update)
		userGroup.DELETE("/:id", r.accountHandler.Delete)
	}

	tokenGroup := e.Group("/tokens")
	tokenGroup.Use(r.authMiddleware.Authenticate)
	{
		tokenGroup.PUT("/:id/renew", r.sessionHandler.Renew)
		tokenGroup.DELETE("/:id", r.sessionHandler.Revoke)
	}

	productGroup := e.Group("/products")
	productGroup.Use(r.authMiddleware.Authenticate)
	{
		productGroup.GET("", r.catalogHandler.List)
	}

	cartGroup := e.Group("/carts")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.POST("", r.cartHandler.Create)
		cartGroup.GET("/:id", r.cartHandler.Get)
		cartGroup.PUT("/:id/items", r.cartHandler.MergeItem)
	}

	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("", r.checkoutHandler.Checkout)
	}
}
