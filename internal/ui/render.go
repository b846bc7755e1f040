package ui

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/templui/galeri/internal/ctxkeys"
	"github.com/templui/galeri/internal/validation"
)

// Viewer is the signed-in user as pages see it.
type Viewer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type page struct {
	Page      string  `json:"page"`
	Data      any     `json:"data"`
	Flash     *Flash  `json:"flash,omitempty"`
	Viewer    *Viewer `json:"viewer"`
	CSRFToken string  `json:"csrf_token,omitempty"`
}

// WantsJSON reports whether the client asked for JSON instead of redirects.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// CurrentViewer returns the signed-in user of r, or nil.
func CurrentViewer(r *http.Request) *Viewer {
	user := ctxkeys.User(r.Context())
	if user == nil {
		return nil
	}
	return &Viewer{ID: user.ID, Name: user.Name, Email: user.Email}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render failed", "error", err)
	}
}

// Render writes a page payload. A pending flash message is consumed.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	JSON(w, http.StatusOK, page{
		Page:      name,
		Data:      data,
		Flash:     PopFlash(w, r),
		Viewer:    CurrentViewer(r),
		CSRFToken: ctxkeys.CSRFToken(r.Context()),
	})
}

// Error writes {"message": msg}.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusNotFound, "Not Found")
}

// ValidationErrors answers 422 with every failed field.
func ValidationErrors(w http.ResponseWriter, r *http.Request, errs validation.Errors) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}

// Done finishes a successful mutation. JSON clients get the flash and data
// inline; browsers get the flash cookie and a 303 to location.
func Done(w http.ResponseWriter, r *http.Request, flash Flash, location string, data any) {
	if WantsJSON(r) {
		JSON(w, http.StatusOK, map[string]any{
			"flash":    flash,
			"location": location,
			"data":     data,
		})
		return
	}

	SetFlash(w, r, flash)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Back returns the same-origin Referer path, or fallback.
func Back(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}

	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}

	back := u.EscapedPath()
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
