package middleware

import (
	"net/http"
	"time"

	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// Session middleware attaches the visitor's draft session to the request
// context, issuing a new cookie when the request has none or a forged one.
func Session(cookieName string, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(cookieName); err == nil && utils.ValidSessionID(c.Value) {
				sid = c.Value
			} else {
				if err == nil {
					logger.Debug("Replacing malformed session cookie", zap.String("path", r.URL.Path))
				}
				sid = utils.NewSessionID()
			}

			// Refresh on every request so an active visitor keeps the draft.
			cookie := &http.Cookie{
				Name:     cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if ttl > 0 {
				cookie.MaxAge = int(ttl.Seconds())
			}
			http.SetCookie(w, cookie)

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), sid)))
		})
	}
}
