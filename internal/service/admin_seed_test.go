package service

import (
    "context"
    "errors"
    "testing"

    "github.com/iliyamo/condo-booking/internal/repository"
)

// fakeUserCreator records Create calls and returns a configured error.
type fakeUserCreator struct {
    calls    int
    username string
    cost     int
    err      error
}

func (f *fakeUserCreator) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
    f.calls++
    f.username = username
    f.cost = cost
    if f.err != nil {
        return 0, f.err
    }
    return 1, nil
}

func TestSeedAdminCreatesAccount(t *testing.T) {
    users := &fakeUserCreator{}
    if err := SeedAdmin(context.Background(), users, "admin", "hunter2", 12); err != nil {
        t.Fatalf("SeedAdmin: %v", err)
    }
    if users.calls != 1 || users.username != "admin" || users.cost != 12 {
        t.Fatalf("unexpected create call: %+v", users)
    }
}

func TestSeedAdminExistingAccountIsSuccess(t *testing.T) {
    users := &fakeUserCreator{err: repository.ErrUsernameExists}
    if err := SeedAdmin(context.Background(), users, "admin", "hunter2", 12); err != nil {
        t.Fatalf("SeedAdmin with existing account: %v", err)
    }
}

func TestSeedAdminPropagatesStoreError(t *testing.T) {
    boom := errors.New("db gone")
    users := &fakeUserCreator{err: boom}
    if err := SeedAdmin(context.Background(), users, "admin", "hunter2", 12); !errors.Is(err, boom) {
        t.Fatalf("err = %v, want %v", err, boom)
    }
}

func TestSeedAdminSkipsWhenUnconfigured(t *testing.T) {
    for _, tc := range [][2]string{{"", "hunter2"}, {"admin", ""}, {"", ""}} {
        users := &fakeUserCreator{}
        if err := SeedAdmin(context.Background(), users, tc[0], tc[1], 12); err != nil {
            t.Fatalf("SeedAdmin(%q, %q): %v", tc[0], tc[1], err)
        }
        if users.calls != 0 {
            t.Fatalf("SeedAdmin(%q, %q) called Create", tc[0], tc[1])
        }
    }
}
