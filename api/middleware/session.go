package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/invisimart/storefront-web/pkg/logger"
)

type sessionCtxKey struct{}

// Session mints a session cookie for first-time visitors and puts the session
// id on the request context. The session scopes the cart to one browser.
// secure marks the cookie HTTPS-only, set in production deployments.
func Session(cookieName string, secure bool, logg *logger.Logger) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = "invisimart_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID stores the session id on the context, used by tests as well.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionIDFromContext returns the session id or the empty string.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
