// Package session keeps the per-browser storefront state between requests.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/google/uuid"
)

// State is everything one session carries: its cart and its browsing
// position. Page is zero-based.
type State struct {
	ID        string       `json:"id"`
	Cart      *cart.Ledger `json:"cart"`
	Search    string       `json:"search"`
	Origin    string       `json:"origin"`
	Page      int          `json:"page"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewState returns a blank state for id.
func NewState(id string) *State {
	return &State{ID: id, Cart: cart.New()}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

func (s *State) normalize() {
	if s.Cart == nil {
		s.Cart = cart.New()
	}
	if s.Page < 0 {
		s.Page = 0
	}
}

// Store persists session state.
type Store interface {
	// Get returns the state for id or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id string) error
}

// LoadOrNew returns the stored state for id, or a fresh state when id is
// empty, malformed or unknown. The fresh state is not saved.
func LoadOrNew(ctx context.Context, store Store, id string) (*State, error) {
	id = strings.TrimSpace(id)
	if !ValidID(id) {
		return NewState(NewID()), nil
	}
	state, err := store.Get(ctx, id)
	if err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
			return NewState(id), nil
		}
		return nil, err
	}
	return state, nil
}

func errNotFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "session not found").WithDetails(map[string]any{"session_id": id})
}
