package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mitienda/storefront-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type contextKey string

const ctxCartSession contextKey = "cart_session"

// CartSession resolves the caller's cart session from the request
// header, minting a fresh one when absent. The session ID is echoed
// back so anonymous clients can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(cartSessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), ctxCartSession, sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartSessionFromContext returns the session ID installed by CartSession.
func CartSessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartSession).(string); ok {
		return v
	}
	return ""
}
