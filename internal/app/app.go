package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pixelgram/pixelgram/internal/auth"
	"github.com/pixelgram/pixelgram/internal/config"
	"github.com/pixelgram/pixelgram/internal/db"
	"github.com/pixelgram/pixelgram/internal/media"
	"github.com/pixelgram/pixelgram/internal/repository"
	"github.com/pixelgram/pixelgram/internal/service"
	"github.com/pixelgram/pixelgram/internal/token"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Media          *media.Store
	Tokens         *token.Service
	Gate           *auth.Gate
	UserService    *service.UserService
	PostService    *service.PostService
	CommentService *service.CommentService
	StoryService   *service.StoryService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	postRepository := repository.NewPostRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	storyRepository := repository.NewStoryRepository(database)

	// Media storage
	mediaStore, err := media.New(media.Config{
		ProfileDir: cfg.ProfileUploadPath,
		StoryDir:   cfg.StoryUploadPath,
		PostDir:    cfg.PostUploadPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media storage: %v", err)
	}

	// Tokens
	tokens := token.New(cfg.JWTSecret, cfg.JWTExpiry)
	gate := auth.NewGate(tokens)

	// Services
	userService := service.NewUserService(userRepository, mediaStore)
	postService := service.NewPostService(postRepository, mediaStore)
	commentService := service.NewCommentService(commentRepository)
	storyService := service.NewStoryService(storyRepository, mediaStore, cfg.StoryTTL)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Media:          mediaStore,
		Tokens:         tokens,
		Gate:           gate,
		UserService:    userService,
		PostService:    postService,
		CommentService: commentService,
		StoryService:   storyService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
