package handler

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "net/url"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/config"
    "github.com/iliyamo/condo-booking/internal/middleware"
    "github.com/iliyamo/condo-booking/internal/model"
    "github.com/iliyamo/condo-booking/internal/repository"
    "github.com/iliyamo/condo-booking/internal/utils"
)

type fakeUsers struct {
    users map[string]model.User
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (model.User, error) {
    u, ok := f.users[username]
    if !ok {
        return model.User{}, errors.New("no rows")
    }
    return u, nil
}

func authTestConfig() config.Config {
    return config.Config{
        SessionSecret: "test-session-secret",
        SessionTTLMin: 30,
        BcryptCost:    4,
    }
}

func newAuthTestServer(t *testing.T, sessions repository.SessionStore) *echo.Echo {
    t.Helper()
    cfg := authTestConfig()
    hash, err := utils.HashPassword("s3cret", cfg.BcryptCost)
    if err != nil {
        t.Fatalf("hash password: %v", err)
    }
    users := &fakeUsers{users: map[string]model.User{
        "admin": {ID: 1, Username: "admin", PasswordHash: hash, IsActive: true},
    }}
    h := NewAuthHandler(cfg, users, sessions)
    e := echo.New()
    e.POST("/login", h.Login)
    e.POST("/logout", h.Logout, middleware.AdminSession(cfg.SessionSecret, sessions))
    return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
    sessions := repository.NewMemorySessionStore()
    e := newAuthTestServer(t, sessions)

    rec := postForm(e, "/login", url.Values{"username": {"admin"}, "password": {"s3cret"}})
    if rec.Code != http.StatusFound {
        t.Fatalf("code = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin" {
        t.Fatalf("redirect to %q, want /admin", loc)
    }

    var cookie *http.Cookie
    for _, c := range rec.Result().Cookies() {
        if c.Name == middleware.SessionCookieName {
            cookie = c
        }
    }
    if cookie == nil || cookie.Value == "" {
        t.Fatal("session cookie not set")
    }
    if !cookie.HttpOnly {
        t.Fatal("session cookie is not HttpOnly")
    }

    username, id, err := utils.ParseSessionToken(authTestConfig().SessionSecret, cookie.Value)
    if err != nil || username != "admin" {
        t.Fatalf("cookie does not parse: %v (user %q)", err, username)
    }
    if stored, err := sessions.Get(context.Background(), id); err != nil || stored != "admin" {
        t.Fatalf("no server-side session for id %q: %v", id, err)
    }
}

func TestLoginFailureRedirectsWithErrorFlag(t *testing.T) {
    sessions := repository.NewMemorySessionStore()
    e := newAuthTestServer(t, sessions)

    cases := []url.Values{
        {"username": {"admin"}, "password": {"wrong"}},
        {"username": {"nobody"}, "password": {"s3cret"}},
        {"username": {"admin"}},
        {},
    }
    for _, form := range cases {
        rec := postForm(e, "/login", form)
        if rec.Code != http.StatusFound {
            t.Fatalf("form %v: code = %d, want 302", form, rec.Code)
        }
        if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?error=1" {
            t.Fatalf("form %v: redirect to %q, want /login?error=1", form, loc)
        }
        if len(rec.Result().Cookies()) != 0 {
            t.Fatalf("form %v: cookie set on failed login", form)
        }
    }
}

func TestLogoutDestroysSession(t *testing.T) {
    sessions := repository.NewMemorySessionStore()
    e := newAuthTestServer(t, sessions)
    cfg := authTestConfig()

    tok, err := utils.NewSessionToken(cfg.SessionSecret, "admin", cfg.SessionTTLMin)
    if err != nil {
        t.Fatalf("session token: %v", err)
    }
    if err := sessions.Create(context.Background(), tok.ID, "admin", 30*time.Minute); err != nil {
        t.Fatalf("create session: %v", err)
    }

    req := httptest.NewRequest(http.MethodPost, "/logout", nil)
    req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: tok.Token})
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    if rec.Code != http.StatusFound {
        t.Fatalf("code = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
        t.Fatalf("redirect to %q, want /login", loc)
    }
    if _, err := sessions.Get(context.Background(), tok.ID); !errors.Is(err, repository.ErrSessionNotFound) {
        t.Fatalf("session still live after logout: %v", err)
    }
}

func TestLogoutWithoutSessionRedirectsToLogin(t *testing.T) {
    sessions := repository.NewMemorySessionStore()
    e := newAuthTestServer(t, sessions)

    req := httptest.NewRequest(http.MethodPost, "/logout", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    if rec.Code != http.StatusFound {
        t.Fatalf("code = %d, want 302", rec.Code)
    }
    if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
        t.Fatalf("redirect to %q, want /login", loc)
    }
}
