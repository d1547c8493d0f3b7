package middleware // middleware provides shared request processing for handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/repository"
    "github.com/iliyamo/condo-booking/internal/utils"
)

// SessionCookieName is the cookie carrying the signed admin session token.
const SessionCookieName = "admin_session"

// adminUser returns the username of the authenticated admin, if the
// request carries a valid session cookie whose session id still has a
// live server-side record.  The second return is false otherwise.
func adminUser(c echo.Context, secret string, sessions repository.SessionStore) (string, bool) {
    cookie, err := c.Cookie(SessionCookieName)
    if err != nil || cookie.Value == "" {
        return "", false
    }
    username, id, err := utils.ParseSessionToken(secret, cookie.Value)
    if err != nil {
        return "", false
    }
    // The signature only proves we issued the cookie; the session must
    // also still exist server-side (it is deleted at logout).
    stored, err := sessions.Get(c.Request().Context(), id)
    if err != nil || stored != username {
        return "", false
    }
    return username, true
}

// AdminSession returns middleware that admits only requests with a live
// admin session.  The admin username and session id are stored in the
// context under "admin_user" and "session_id" for downstream handlers.
// Requests without a valid session receive 401 for API paths and a
// redirect to /login for browser paths.
func AdminSession(secret string, sessions repository.SessionStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            username, ok := adminUser(c, secret, sessions)
            if !ok {
                if wantsJSON(c) {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
                }
                return c.Redirect(http.StatusFound, "/login")
            }
            c.Set("admin_user", username)
            if cookie, err := c.Cookie(SessionCookieName); err == nil {
                if _, id, err := utils.ParseSessionToken(secret, cookie.Value); err == nil {
                    c.Set("session_id", id)
                }
            }
            return next(c)
        }
    }
}

// wantsJSON reports whether the route is part of the JSON API rather
// than the browser-facing admin pages.
func wantsJSON(c echo.Context) bool {
    p := c.Path()
    return len(p) >= 5 && p[:5] == "/api/"
}
