package service

import (
    "context"
    "errors"

    "github.com/iliyamo/condo-booking/internal/repository"
)

// UserCreator stores admin accounts.
type UserCreator interface {
    Create(ctx context.Context, username, password string, cost int) (uint64, error)
}

// SeedAdmin ensures the configured admin account exists.  It is called at
// startup and is idempotent: an already-existing username is success, so
// restarts never fail on it.  An empty username or password skips seeding
// entirely (the account is then created out of band, see
// scripts/schema.sql).
func SeedAdmin(ctx context.Context, users UserCreator, username, password string, cost int) error {
    if username == "" || password == "" {
        return nil
    }
    _, err := users.Create(ctx, username, password, cost)
    if errors.Is(err, repository.ErrUsernameExists) {
        return nil
    }
    return err
}
