package routes

import (
	"net/http"

	"github.com/templui/galeri/internal/app"
	"github.com/templui/galeri/internal/handler"
	"github.com/templui/galeri/internal/middleware"
	"github.com/templui/galeri/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	album := handler.NewAlbumHandler(app.AlbumService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Stored photos (disk driver only; S3 URLs point at the bucket)
	if disk, ok := app.Storage.(*storage.DiskStorage); ok {
		blobs := handler.NewStorageHandler(disk)
		mux.HandleFunc("GET /storage/{path...}", blobs.Serve)
	}

	// Albums
	mux.HandleFunc("GET /{$}", album.ListPage)
	mux.HandleFunc("GET /albums/{album}", album.ShowPage)

	// Auth (login is rate limited)
	rateLimiter := middleware.RateLimit(app.LoginLimiter)

	mux.HandleFunc("GET /auth/login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/me", auth.Me)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(home.Dashboard))

	mux.HandleFunc("POST /albums", middleware.RequireAuth(album.Create))
	mux.HandleFunc("PUT /albums/{album}", middleware.RequireAuth(album.Update))
	mux.HandleFunc("DELETE /albums/{album}", middleware.RequireAuth(album.Delete))
	mux.HandleFunc("POST /albums/{album}/photos", middleware.RequireAuth(album.Upload))
	mux.HandleFunc("DELETE /albums/{album}/photos/{photo}", middleware.RequireAuth(album.DeletePhoto))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (CSRF and flash cookies read it)
		middleware.RequestLogging(mux),
		middleware.MaxBodySize(app.Cfg.UploadMaxRequestMB<<20),
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)

	return handler
}
