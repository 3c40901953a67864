package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canback/pickup-platform/internal/tokens"
)

type fakeTokens struct {
	accounts map[string]string
	err      error
}

func (f *fakeTokens) Issue(ctx context.Context, accountID string) (string, error) {
	return "", nil
}

func (f *fakeTokens) Revoke(ctx context.Context, token string) error {
	return nil
}

func (f *fakeTokens) Lookup(ctx context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id, ok := f.accounts[token]
	if !ok {
		return "", tokens.ErrTokenNotFound
	}
	return id, nil
}

func TestAccountAuthMissingHeader(t *testing.T) {
	mw := AccountAuth(&fakeTokens{})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAccountAuthUnknownToken(t *testing.T) {
	mw := AccountAuth(&fakeTokens{accounts: map[string]string{}})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAccountAuthLookupFailure(t *testing.T) {
	mw := AccountAuth(&fakeTokens{err: errors.New("redis down")})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestAccountAuthValidToken(t *testing.T) {
	mw := AccountAuth(&fakeTokens{accounts: map[string]string{"abc": "acct-1"}})
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, ok := AccountIDFromContext(r.Context())
		if !ok || id != "acct-1" {
			t.Fatalf("expected account ID in context, got %q ok=%v", id, ok)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}
