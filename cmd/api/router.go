package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

// SetupRouter mounts the HTTP surface. Reads on every collection are
// public; registration state changes go through the authorization gate and
// posts additionally check ownership in the service layer.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.Frontend.URL),
	)

	authGate := middleware.Auth(c.JWTManager, c.AuthorRepo)

	router.GET("/health", healthCheckHandler(c))

	// Authentication
	router.POST("/register", c.AuthHandler.Register)
	router.POST("/login", c.AuthHandler.Login)
	router.GET("/auth/google", c.AuthHandler.GoogleLogin)
	router.GET("/auth/callback-google", c.AuthHandler.GoogleCallback)

	// The caller's own record
	me := router.Group("/me", authGate)
	{
		me.GET("", c.AuthHandler.Me)
		me.PUT("", c.AuthHandler.UpdateMe)
		me.PATCH("/avatar", c.AuthHandler.UploadMyAvatar)
		me.DELETE("", c.AuthHandler.DeleteMe)
	}

	// Authors collection
	authors := router.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.GET("/:id/blogPosts", c.AuthorHandler.ListPosts)
		authors.POST("", c.AuthorHandler.Create)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.PATCH("/:id/avatar", c.AuthorHandler.UploadAvatar)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.DELETE("", c.AuthorHandler.DeleteAll)
	}

	// Posts collection; comments nest under a post
	posts := router.Group("/blogPosts")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/:id", c.PostHandler.GetByID)
		posts.POST("", authGate, c.PostHandler.Create)
		posts.PUT("/:id", authGate, c.PostHandler.Update)
		posts.PATCH("/:id/cover", authGate, c.PostHandler.UploadCover)
		posts.DELETE("/:id", authGate, c.PostHandler.Delete)
		posts.DELETE("", authGate, c.PostHandler.DeleteAll)

		posts.GET("/:id/comments", c.CommentHandler.ListByPost)
		posts.GET("/:id/comments/:commentId", c.CommentHandler.GetByID)
		posts.POST("/:id/comments", c.CommentHandler.Create)
		posts.PUT("/:id/comments/:commentId", c.CommentHandler.Update)
		posts.DELETE("/:id/comments/:commentId", c.CommentHandler.Delete)
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			cacheStatus = "down"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"version":  c.Config.App.Version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
