// Package router defines how HTTP routes are registered for the API.
// Public reads are registered without the auth gate (optionally behind
// the response cache); every write and the personalized feed sit
// behind middleware.JWTAuth.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/handler"
	"github.com/iliyamo/social-blog/internal/middleware"
)

// RegisterRoutes registers routes that carry no dependencies. Currently
// only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and credential routes.
// Register, login and the public profile need no token; /auth/auth and
// /auth/changepassword run behind the gate.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	gate := middleware.JWTAuth(jwtSecret)

	g := e.Group("/auth")
	g.POST("", a.Register)
	g.POST("/login", a.Login)
	g.GET("/basicinfo/:id", a.BasicInfo, cache)
	g.GET("/auth", a.Me, gate)
	g.PUT("/changepassword", a.ChangePassword, gate)
}

// RegisterPosts registers the post routes. Single-post and per-user
// reads are public and cacheable; the feed is protected because it
// carries the caller's like state.
func RegisterPosts(e *echo.Echo, p *handler.PostHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	gate := middleware.JWTAuth(jwtSecret)

	g := e.Group("/posts")
	g.GET("", p.Feed, gate)
	g.GET("/byId/:id", p.GetByID, cache)
	g.GET("/byUserId/:userId", p.ListByUser, cache)
	g.POST("", p.Create, gate)
	g.POST("/title", p.UpdateTitle, gate)
	g.POST("/postText", p.UpdateText, gate)
	g.DELETE("/:postId", p.Delete, gate)
}

// RegisterComments registers the comment routes.
func RegisterComments(e *echo.Echo, cm *handler.CommentHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	gate := middleware.JWTAuth(jwtSecret)

	g := e.Group("/comments")
	g.GET("/:postId", cm.ListByPost, cache)
	g.POST("", cm.Create, gate)
	g.DELETE("/:commentId", cm.Delete, gate)
}

// RegisterLikes registers the like toggle route.
func RegisterLikes(e *echo.Echo, l *handler.LikeHandler, jwtSecret string) {
	e.POST("/likes", l.Toggle, middleware.JWTAuth(jwtSecret))
}
