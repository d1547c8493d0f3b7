package repository

import (
    "context"
    "errors"
    "testing"
    "time"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
    s := NewMemorySessionStore()
    ctx := context.Background()

    if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
        t.Fatalf("Get missing: err = %v, want ErrSessionNotFound", err)
    }

    if err := s.Create(ctx, "sid-1", "admin", time.Minute); err != nil {
        t.Fatalf("Create: %v", err)
    }
    username, err := s.Get(ctx, "sid-1")
    if err != nil || username != "admin" {
        t.Fatalf("Get: %q, %v; want admin, nil", username, err)
    }

    if err := s.Delete(ctx, "sid-1"); err != nil {
        t.Fatalf("Delete: %v", err)
    }
    if _, err := s.Get(ctx, "sid-1"); !errors.Is(err, ErrSessionNotFound) {
        t.Fatalf("Get after delete: err = %v, want ErrSessionNotFound", err)
    }

    // deleting again is a no-op
    if err := s.Delete(ctx, "sid-1"); err != nil {
        t.Fatalf("Delete missing: %v", err)
    }
}

func TestMemorySessionStoreExpiry(t *testing.T) {
    s := NewMemorySessionStore()
    ctx := context.Background()

    if err := s.Create(ctx, "short", "admin", 10*time.Millisecond); err != nil {
        t.Fatalf("Create: %v", err)
    }
    time.Sleep(30 * time.Millisecond)
    if _, err := s.Get(ctx, "short"); !errors.Is(err, ErrSessionNotFound) {
        t.Fatalf("Get expired: err = %v, want ErrSessionNotFound", err)
    }
}
