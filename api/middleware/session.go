package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

// Session attaches the anonymous storefront session to every request. The
// session id keys the cart and order-draft state in Redis; a visitor without
// the cookie gets a fresh id minted on first contact.
func Session(cookieName string, ttl time.Duration, secure bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" || uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
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
