package container

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/oauth"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	"blog-backend/internal/domains/post"
	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"

	"blog-backend/internal/domains/comment"
	commentHandler "blog-backend/internal/domains/comment/handler"
	commentRepo "blog-backend/internal/domains/comment/repository"
	commentService "blog-backend/internal/domains/comment/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    storage.Storage
	Email      email.EmailService
	OAuth      oauth.Provider

	AuthorRepo  author.Repository
	PostRepo    post.Repository
	CommentRepo comment.Repository

	AuthorService  author.Service
	PostService    post.Service
	CommentService comment.Service

	AuthHandler    *authorHandler.AuthHandler
	AuthorHandler  *authorHandler.AuthorHandler
	PostHandler    *postHandler.PostHandler
	CommentHandler *commentHandler.CommentHandler
}

// NewContainer builds the whole graph. Order matters: a step only uses
// what previous steps produced.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	logger.Info("Configuration loaded", map[string]interface{}{"environment": cfg.App.Environment})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	c.DB = db
	logger.Info("Database connected", nil)

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	logger.Info("Cache connected", nil)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = minioStorage

	c.Email = email.NewSMTPEmailService(cfg.Email)
	c.OAuth = oauth.NewGoogleProvider(cfg.Google)

	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(db.Pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(db.Pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.JWTManager, c.Email)
	c.PostService = postService.NewPostService(c.PostRepo, c.AuthorRepo, c.Email)
	c.CommentService = commentService.NewCommentService(c.CommentRepo)

	c.AuthHandler = authorHandler.NewAuthHandler(c.AuthorService, c.Storage, c.OAuth, cfg.Frontend.URL)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.PostService, c.Storage)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, c.Storage)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)

	logger.Info("Container initialized", nil)
	return c, nil
}

// Cleanup releases infrastructure connections, in reverse order.
func (c *Container) Cleanup() {
	if cl, ok := c.Cache.(interface{ Close() error }); ok && cl != nil {
		if err := cl.Close(); err != nil {
			logger.Error("Failed to close cache", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}
}
