package ui

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/templui/galeri/internal/ctxkeys"
)

const flashCookieName = "flash"

type FlashType string

const (
	FlashSuccess FlashType = "success"
	FlashWarning FlashType = "warning"
	FlashError   FlashType = "error"
)

// Flash is a one-shot message shown on the next page.
type Flash struct {
	Type    FlashType `json:"type"`
	Message string    `json:"message"`
}

func Success(msg string) Flash {
	return Flash{Type: FlashSuccess, Message: msg}
}

func Warning(msg string) Flash {
	return Flash{Type: FlashWarning, Message: msg}
}

func Failure(msg string) Flash {
	return Flash{Type: FlashError, Message: msg}
}

// SetFlash stores flash for the next request.
func SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) {
	raw, err := json.Marshal(flash)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   isProduction(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction(r),
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flash Flash
	err = json.Unmarshal(raw, &flash)
	if err != nil || flash.Message == "" {
		return nil
	}

	return &flash
}

func isProduction(r *http.Request) bool {
	cfg := ctxkeys.Config(r.Context())
	return cfg != nil && cfg.IsProduction()
}
