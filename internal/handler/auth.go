package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/galeri/internal/message"
	"github.com/templui/galeri/internal/service"
	"github.com/templui/galeri/internal/ui"
	"github.com/templui/galeri/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, "auth/login", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	errs := validation.Errors{}
	if email == "" {
		errs.Add("email", "The email field is required.")
	}
	if password == "" {
		errs.Add("password", "The password field is required.")
	}
	if len(errs) > 0 {
		ui.ValidationErrors(w, r, errs)
		return
	}

	user, err := h.authService.Login(email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		ui.ValidationErrors(w, r, validation.Errors{"email": "These credentials do not match our records."})
		return
	}
	if err != nil {
		slog.Error("failed to log in", "error", err)
		ui.Error(w, r, http.StatusInternalServerError, "Server Error")
		return
	}

	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate jwt", "error", err, "user_id", user.ID)
		ui.Error(w, r, http.StatusInternalServerError, "Server Error")
		return
	}

	h.authService.SetJWTCookie(w, token, expiry)
	slog.Info("user logged in", "user_id", user.ID)

	ui.Done(w, r, ui.Success(message.Sprintf(message.LoggedIn, user.Name)), "/", ui.Viewer{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	ui.Done(w, r, ui.Success(message.Sprintf(message.LoggedOut)), "/", nil)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewer := ui.CurrentViewer(r)
	if viewer == nil {
		ui.Error(w, r, http.StatusUnauthorized, "Unauthenticated.")
		return
	}
	ui.JSON(w, http.StatusOK, viewer)
}
