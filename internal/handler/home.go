package handler

import (
	"net/http"

	"github.com/templui/galeri/internal/ui"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Dashboard has no page of its own; signed-in users land on the album list.
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.NotFound(w, r)
}
