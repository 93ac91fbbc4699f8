package middleware

import (
	"context"

	"github.com/angelmondragon/partsdesk-backend/internal/session"
)

type contextKey string

const ctxSession contextKey = "session"

type sessionHandle struct {
	state *session.State
	store session.Store
}

// SessionFromContext returns the state attached by the Session middleware.
func SessionFromContext(ctx context.Context) *session.State {
	if h := handleFromContext(ctx); h != nil {
		return h.state
	}
	return nil
}

// SaveSession persists the state attached by the Session middleware.
func SaveSession(ctx context.Context) error {
	h := handleFromContext(ctx)
	if h == nil || h.store == nil {
		return errSessionMissing
	}
	return h.store.Save(ctx, h.state)
}

// WithSession attaches state and its store to ctx.
func WithSession(ctx context.Context, state *session.State, store session.Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, &sessionHandle{state: state, store: store})
}

func handleFromContext(ctx context.Context) *sessionHandle {
	if ctx == nil {
		return nil
	}
	if h, ok := ctx.Value(ctxSession).(*sessionHandle); ok {
		return h
	}
	return nil
}
