package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/config"
    "github.com/iliyamo/condo-booking/internal/middleware"
    "github.com/iliyamo/condo-booking/internal/model"
    "github.com/iliyamo/condo-booking/internal/repository"
    "github.com/iliyamo/condo-booking/internal/utils"
)

// UserStore looks up admin accounts for login.
type UserStore interface {
    GetByUsername(ctx context.Context, username string) (model.User, error)
}

// AuthHandler implements the browser-facing admin login and logout.  On
// success a server-side session is created and its signed id is placed
// in an HttpOnly cookie; on failure the login page is reloaded with an
// error flag.  Credential mistakes and unknown usernames produce the
// same response.
type AuthHandler struct {
    Cfg      config.Config
    Users    UserStore
    Sessions repository.SessionStore
}

// NewAuthHandler constructs an AuthHandler.  All dependencies must be
// non-nil.
func NewAuthHandler(cfg config.Config, users UserStore, sessions repository.SessionStore) *AuthHandler {
    if users == nil || sessions == nil {
        panic("nil dependency passed to NewAuthHandler")
    }
    return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

type loginReq struct {
    Username string `json:"username" form:"username"`
    Password string `json:"password" form:"password"`
}

// Login handles POST /login.  It verifies the username and password
// against the stored bcrypt hash, establishes a session and redirects to
// the admin view; any failure redirects back to the form with ?error=1.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
        return c.Redirect(http.StatusFound, "/login?error=1")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByUsername(ctx, req.Username)
    if err != nil || !u.IsActive {
        return c.Redirect(http.StatusFound, "/login?error=1")
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.Redirect(http.StatusFound, "/login?error=1")
    }

    tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, u.Username, h.Cfg.SessionTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
    }
    ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
    if err := h.Sessions.Create(ctx, tok.ID, u.Username, ttl); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
    }

    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookieName,
        Value:    tok.Token,
        Path:     "/",
        Expires:  tok.Exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusFound, "/admin")
}

// Logout handles POST /logout.  The admin session middleware has already
// validated the cookie; the handler deletes the server-side record so
// the cookie is dead even if the browser keeps it, clears the cookie and
// redirects to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
    if id, ok := c.Get("session_id").(string); ok && id != "" {
        if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to destroy session"})
        }
    }
    c.SetCookie(&http.Cookie{
        Name:     middleware.SessionCookieName,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusFound, "/login")
}
