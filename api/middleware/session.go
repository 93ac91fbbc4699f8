package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/partsdesk-backend/api/responses"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

var errSessionMissing = pkgerrors.New(pkgerrors.CodeInternal, "session context missing")

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the caller's storefront session from its cookie, creating
// one when the cookie is absent or stale, and refreshes the cookie on every
// response. Handlers persist changes with SaveSession.
func Session(store session.Store, opts SessionOptions, logg *logger.Logger) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "partsdesk_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := ""
			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				id = cookie.Value
			}

			state, err := session.LoadOrNew(ctx, store, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    state.ID,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			if logg != nil {
				ctx = logg.WithSessionID(ctx, state.ID)
			}
			ctx = WithSession(ctx, state, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
