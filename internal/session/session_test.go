package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/vacation-tracker-cli/internal/api"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state", "token"), zap.NewNop())
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Load() on empty store error = %v, want ErrNotLoggedIn", err)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if token != "abc123" {
		t.Errorf("Load() = %q, want %q", token, "abc123")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() after Clear() error = %v, want ErrNotLoggedIn", err)
	}

	// Clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"_id":   "user-1",
			"name":  "John Doe",
			"email": "john.doe@example.com",
		})
	}))
	defer server.Close()

	store := newTestStore(t)
	client := api.NewClient(server.URL, 5*time.Second, zap.NewNop())

	if _, err := Resolve(context.Background(), store, client); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Resolve() without token error = %v, want ErrNotLoggedIn", err)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	sess, err := Resolve(context.Background(), store, client)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if sess.User.ID != "user-1" {
		t.Errorf("User.ID = %q, want %q", sess.User.ID, "user-1")
	}
	if sess.Token != "abc123" {
		t.Errorf("Token = %q, want %q", sess.Token, "abc123")
	}
}

func TestResolve_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Save("stale"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	client := api.NewClient(server.URL, 5*time.Second, zap.NewNop())

	_, err := Resolve(context.Background(), store, client)
	if err == nil {
		t.Fatal("Resolve() with rejected token should error")
	}

	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		t.Errorf("error = %v, want *api.RemoteError", err)
	}
}
