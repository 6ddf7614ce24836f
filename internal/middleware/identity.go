package middleware

// identity.go extracts the caller's user number and session identifier
// from the request.  There is no authentication in this service: the user
// number is only format-validated here (and again at the availability
// handler, which refuses to contact the upstream feed without a valid
// one), then stored in the Echo context so the cache and rate-limit key
// builders can partition per user.

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/library-seat-availability/internal/utils"
)

const (
    // HeaderUserNumber carries the caller's r/u/b-number.
    HeaderUserNumber = "X-User-Number"
    // HeaderSessionID carries an opaque client-chosen session identifier
    // scoping the caller's slot selection.
    HeaderSessionID = "X-Session-ID"

    ctxUserNumber = "user_number"
)

// Identity reads the user number from the X-User-Number header (falling
// back to the uid query parameter) and, when it is well-formed, stores the
// normalized value in the context.  A malformed value is stored as empty
// rather than rejected here; endpoints that require an identity enforce it
// themselves.
func Identity() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := c.Request().Header.Get(HeaderUserNumber)
            if raw == "" {
                raw = c.QueryParam("uid")
            }
            if uid, err := utils.NormalizeUserNumber(raw); err == nil {
                c.Set(ctxUserNumber, uid)
            }
            return next(c)
        }
    }
}

// UserNumber returns the normalized user number stored by Identity, or
// "guest" when the request carried none.
func UserNumber(c echo.Context) string {
    if v := c.Get(ctxUserNumber); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "guest"
}

// SessionID returns the caller's session identifier, falling back to the
// client IP so selection still works for clients that never set the
// header.
func SessionID(c echo.Context) string {
    if sid := c.Request().Header.Get(HeaderSessionID); sid != "" {
        return sid
    }
    if ip := c.RealIP(); ip != "" {
        return ip
    }
    return "anonymous"
}
