package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-pass-market/internal/config"
)

// listingCtx builds an echo context for a single-listing read, the
// param-bearing route this service caches.
func listingCtx(target, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/listings/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestCacheKeyIncludesPathParams(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, listingCtx("/v1/listings/1", "1"))
	k2 := cacheKeyFrom(cfg, listingCtx("/v1/listings/2", "2"))
	if k1 == k2 {
		t.Fatalf("keys for listings 1 and 2 collide: %s", k1)
	}

	// The same listing must keep producing the same key.
	again := cacheKeyFrom(cfg, listingCtx("/v1/listings/1", "1"))
	if k1 != again {
		t.Fatalf("key for listing 1 not stable: %s vs %s", k1, again)
	}
}

func TestCacheKeyIncludesPathParamsAllStrategies(t *testing.T) {
	for _, strategy := range []string{"route", "method_route", "method_route_query", "route_query"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: strategy}
			k1 := cacheKeyFrom(cfg, listingCtx("/v1/listings/1", "1"))
			k2 := cacheKeyFrom(cfg, listingCtx("/v1/listings/2", "2"))
			if k1 == k2 {
				t.Fatalf("strategy %s: keys for different listings collide: %s", strategy, k1)
			}
		})
	}
}

// A body past the capture limit must mark the writer oversized so the
// middleware skips storing it; a truncated cached body would be served
// as broken JSON on the next hit.
func TestCaptureWriterOversized(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	if _, err := cw.Write([]byte("12345678")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.oversized {
		t.Fatal("writer marked oversized at exactly the limit")
	}
	if _, err := cw.Write([]byte("9")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !cw.oversized {
		t.Fatal("writer not marked oversized past the limit")
	}
	// The client still receives the full body either way.
	if got := rec.Body.String(); got != "123456789" {
		t.Fatalf("client body = %q; want full body", got)
	}
}

func TestCacheKeyDistinguishesQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	searchCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/listings/search")
		return c
	}

	k1 := cacheKeyFrom(cfg, searchCtx("/v1/listings/search?city=Mumbai"))
	k2 := cacheKeyFrom(cfg, searchCtx("/v1/listings/search?city=Pune"))
	if k1 == k2 {
		t.Fatalf("keys for different search queries collide: %s", k1)
	}
}
