package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/shopspring/decimal"
)

func TestSessionCreatesCookieForNewVisitor(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	var seen *session.State
	handler := Session(store, SessionOptions{CookieName: "sid", TTL: time.Hour}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if seen == nil || !session.ValidID(seen.ID) {
		t.Fatalf("expected a fresh session, got %+v", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != seen.ID {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes %+v", cookies[0])
	}
}

func TestSessionLoadsAndSavesExistingState(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	state := session.NewState(session.NewID())
	state.Search = "filter"
	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("seed: %v", err)
	}

	handler := Session(store, SessionOptions{CookieName: "sid", TTL: time.Hour}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := SessionFromContext(r.Context())
		if st.Search != "filter" {
			t.Fatalf("expected stored search, got %q", st.Search)
		}
		st.Cart.Adjust("Oil Filter", decimal.NewFromInt(50), 1)
		if err := SaveSession(r.Context()); err != nil {
			t.Fatalf("save: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: state.ID})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	got, err := store.Get(context.Background(), state.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Cart.Quantity("Oil Filter") != 1 {
		t.Fatalf("expected saved cart, got %+v", got.Cart.Lines())
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*session.State, error) {
	return nil, errors.New("backend down")
}
func (brokenStore) Save(context.Context, *session.State) error { return nil }
func (brokenStore) Delete(context.Context, string) error       { return nil }

func TestSessionStoreFailureReturnsError(t *testing.T) {
	called := false
	handler := Session(brokenStore{}, SessionOptions{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "partsdesk_session", Value: session.NewID()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run without a session")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSaveSessionWithoutMiddleware(t *testing.T) {
	if err := SaveSession(context.Background()); err == nil {
		t.Fatal("expected error without session context")
	}
	if SessionFromContext(context.Background()) != nil {
		t.Fatal("expected nil state")
	}
}
