package handlers

import (
	"context"
	"errors"
	"net/http"

	"blog-service/session"

	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
)

// Stage transforms a handler into one that runs some work before it
type Stage func(next httpserver.HandlerFunc) httpserver.HandlerFunc

// Chain wraps h so that stages run in the order given, then h
func Chain(h httpserver.HandlerFunc, stages ...Stage) httpserver.HandlerFunc {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

// ResolveIdentity attaches the session identity, when there is one, to the
// request context, both for the handlers and as the httpserver RequestAuth.
// Anonymous requests pass through untouched.
func ResolveIdentity(sessions *session.Manager) Stage {
	return func(next httpserver.HandlerFunc) httpserver.HandlerFunc {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.Resolve(ctx, r)
			switch {
			case err == nil:
				ctx = session.WithIdentity(ctx, identity)
				ctx = context.WithValue(ctx, httpserver.RequestAuthKey, httpserver.RequestAuth{
					Type:   "session",
					Client: identity.Email,
					Claims: map[string]interface{}{"user_id": identity.UserID},
				})
				r = r.WithContext(ctx)
			case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrInvalidCookie):
				if _, cookieErr := r.Cookie(session.CookieName); cookieErr == nil {
					logRequest(ctx, "debug", "Ignoring stale session cookie", zap.Error(err))
				}
			default:
				logRequest(ctx, "error", "Failed to resolve session", zap.Error(err))
			}
			next(ctx, w, r)
		}
	}
}

// RequireIdentity redirects requests without an identity to redirect.
// Protected pages are never cached.
func RequireIdentity(redirect string) Stage {
	return func(next httpserver.HandlerFunc) httpserver.HandlerFunc {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			w.Header().Set("Pragma", "no-cache")

			if _, ok := session.IdentityFrom(ctx); !ok {
				http.Redirect(w, r, redirect, http.StatusSeeOther)
				return
			}
			next(ctx, w, r)
		}
	}
}
