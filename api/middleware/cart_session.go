package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mostafa3001hamdy/ELEX-Main/api/responses"
	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/config"
	pkgerrors "github.com/Mostafa3001hamdy/ELEX-Main/pkg/errors"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/session"
)

const sessionHeader = "X-Cart-Session"

// CartResolver hands out the cart store of a session.
type CartResolver interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

// CartSession resolves the shopper session from the X-Cart-Session header or the session
// cookie. A missing or invalid token starts a new session and issues a fresh token.
func CartSession(cfg config.SessionConfig, carts CartResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if carts == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart registry unavailable"))
				return
			}

			sessionID, ok := sessionFromRequest(cfg, r)
			if !ok {
				sessionID = session.NewID()
				now := time.Now()
				token, err := session.Mint(cfg, now, sessionID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue cart session"))
					return
				}
				w.Header().Set(sessionHeader, token)
				http.SetCookie(w, sessionCookie(cfg, token, now))
			}

			id := sessionID.String()
			if logg != nil {
				ctx = logg.WithSessionID(ctx, id)
			}

			store, err := carts.Get(ctx, id)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart"))
				return
			}

			ctx = WithSessionID(ctx, id)
			ctx = WithCartStore(ctx, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromRequest(cfg config.SessionConfig, r *http.Request) (uuid.UUID, bool) {
	token := strings.TrimSpace(r.Header.Get(sessionHeader))
	if token == "" && cfg.CookieName != "" {
		if c, err := r.Cookie(cfg.CookieName); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return uuid.Nil, false
	}
	id, err := session.Parse(cfg, token)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func sessionCookie(cfg config.SessionConfig, token string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(cfg.TTL),
		MaxAge:   int(cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
