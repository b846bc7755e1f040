// Package ctxkeys carries the per-request values middleware hands to handlers.
package ctxkeys

import (
	"context"

	"github.com/templui/galeri/internal/config"
	"github.com/templui/galeri/internal/model"
)

type key int

const (
	userKey key = iota
	configKey
	csrfTokenKey
)

// User returns the signed-in user, or nil for guests.
func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

// SignedIn reports whether anyone is signed in. Guests may only browse albums.
func SignedIn(ctx context.Context) bool {
	return User(ctx) != nil
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Config is the sanitized config; it never holds APP_KEY or credentials.
func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey, token)
}
