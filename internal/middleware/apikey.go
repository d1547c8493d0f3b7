package middleware

import (
    "crypto/subtle"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/repository"
)

// APIKeyHeader is the request header carrying the static writer key.
const APIKeyHeader = "X-API-KEY"

// RequireWriter returns middleware that admits a request when it presents
// either writer credential: the pre-shared API key in the X-API-KEY
// header, or a live admin session cookie.  The two schemes are
// independent; holding either one grants the write capability.  Requests
// with neither receive 401 and the handler is never invoked, so an
// unauthorized call can have no side effect.
func RequireWriter(apiKey, sessionSecret string, sessions repository.SessionStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            presented := c.Request().Header.Get(APIKeyHeader)
            if presented != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) == 1 {
                return next(c)
            }
            if username, ok := adminUser(c, sessionSecret, sessions); ok {
                c.Set("admin_user", username)
                return next(c)
            }
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
        }
    }
}
