package middleware

import (
	"context"

	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxCartStore contextKey = "cart_store"
	ctxLocale    contextKey = "locale"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// CartStoreFromContext returns the cart resolved for the request session, if any.
func CartStoreFromContext(ctx context.Context) *cart.Store {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCartStore).(*cart.Store); ok {
		return v
	}
	return nil
}

func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxLocale).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the shopper session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// WithCartStore injects the session's cart store for downstream handlers.
func WithCartStore(ctx context.Context, store *cart.Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartStore, store)
}

func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLocale, locale)
}
