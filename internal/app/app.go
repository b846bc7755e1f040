package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/galeri/internal/config"
	"github.com/templui/galeri/internal/db"
	"github.com/templui/galeri/internal/middleware"
	"github.com/templui/galeri/internal/repository"
	"github.com/templui/galeri/internal/service"
	"github.com/templui/galeri/internal/storage"
	"github.com/templui/galeri/internal/tokenizer"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	Storage      storage.Storage
	AuthService  *service.AuthService
	UserService  *service.UserService
	AlbumService *service.AlbumService
	LoginLimiter *middleware.RateLimiter
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
	albumRepository := repository.NewAlbumRepository(database)
	photoRepository := repository.NewPhotoRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	tokens, err := tokenizer.New(cfg.AppKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize album tokens: %v", err)
	}

	// Services
	authService := service.NewAuthService(
		userRepository,
		cfg.AppKey,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	userService := service.NewUserService(userRepository)
	albumService := service.NewAlbumService(
		albumRepository,
		photoRepository,
		fileStorage,
		tokens,
		cfg.UploadMaxKB,
	)

	return &App{
		Cfg:          cfg,
		DB:           database,
		Storage:      fileStorage,
		AuthService:  authService,
		UserService:  userService,
		AlbumService: albumService,
		LoginLimiter: middleware.NewLoginLimiter(),
	}, nil
}

func (a *App) Close() error {
	if a.LoginLimiter != nil {
		a.LoginLimiter.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
