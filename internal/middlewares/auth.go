package middlewares

import (
	"context"
	"net/http"

	"github.com/jperaza/bancodemo/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Validate(ctx context.Context, tokenString string) error
}

// TokenDenylist reports whether a token has been revoked by logout.
type TokenDenylist interface {
	Contains(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware returns a middleware that validates the JWT and rejects
// tokens revoked via logout.
func AuthMiddleware(tokener Tokener, denylist TokenDenylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if err := tokener.Validate(ctx, tokenString); err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if denylist != nil {
				revoked, err := denylist.Contains(ctx, tokenString)
				if err != nil {
					logger.Log.Errorw("denylist check failed", "err", err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				if revoked {
					logger.Log.Warnw("revoked token presented")
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
