package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/library-seat-availability/internal/config"
)

func cacheCtx(user, session string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/spaces/1/availability?date=2025-06-07", nil)
    if session != "" {
        req.Header.Set(HeaderSessionID, session)
    }
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/spaces/:id/availability")
    if user != "" {
        c.Set(ctxUserNumber, user)
    }
    return c
}

func TestCacheKeyPerSession(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "availcache", KeyStrategy: "route_query_user"}

    a := cacheKeyFrom(cfg, cacheCtx("r0123456", "sess-a"))
    b := cacheKeyFrom(cfg, cacheCtx("r0123456", "sess-b"))
    if a == b {
        t.Fatalf("sessions of one user must not share a cache entry: %q", a)
    }

    // the same session keys stably
    again := cacheKeyFrom(cfg, cacheCtx("r0123456", "sess-a"))
    if a != again {
        t.Fatalf("key not stable for identical requests: %q vs %q", a, again)
    }
}

func TestCacheKeyPerUser(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "availcache", KeyStrategy: "route_query_user"}

    a := cacheKeyFrom(cfg, cacheCtx("r0123456", "sess-a"))
    b := cacheKeyFrom(cfg, cacheCtx("r7654321", "sess-a"))
    if a == b {
        t.Fatalf("users must not share a cache entry: %q", a)
    }
}

func TestCacheKeyRouteStrategyIgnoresIdentity(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "availcache", KeyStrategy: "route_query"}

    a := cacheKeyFrom(cfg, cacheCtx("r0123456", "sess-a"))
    b := cacheKeyFrom(cfg, cacheCtx("r7654321", "sess-b"))
    if a != b {
        t.Fatalf("route_query strategy should not partition by identity: %q vs %q", a, b)
    }
}
