package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aegis-go/aegis/pkg/core"
)

func TestRouterRootPath(t *testing.T) {
	r := New(nil)
	r.GET("/", okHandler("root"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "root" {
		t.Fatalf("expected root route to match /, got %d/%s", rec.Code, rec.Body.String())
	}
}

func TestRouterCollapsesAdjacentSlashes(t *testing.T) {
	r := New(nil)
	r.GET("/a//b", okHandler("ab"))

	req := httptest.NewRequest(http.MethodGet, "//a/b", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "ab" {
		t.Fatalf("expected // to collapse on both sides, got %s (%d)", rec.Body.String(), rec.Code)
	}
}

func TestRouterMethodsAreIsolated(t *testing.T) {
	r := New(nil)
	r.GET("/thing", okHandler("get"))
	r.POST("/thing", okHandler("post"))

	req := httptest.NewRequest(http.MethodPost, "/thing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Body.String() != "post" {
		t.Fatalf("expected the POST tree to answer, got %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/thing", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected an unregistered method to miss, got %d", rec.Code)
	}
}

func TestRouterWildcardMustBeLastSegment(t *testing.T) {
	r := New(nil)
	r.GET("/files/*rest/more", okHandler("bad"))

	if r.Err() == nil {
		t.Fatal("expected a wildcard followed by more segments to be a registration error")
	}
}

// Path-parameter round-trip: building a concrete path from a pattern and a
// params map, then matching it, recovers the same params.
func TestRouterPathParamRoundTrip(t *testing.T) {
	pattern := "/orgs/:org/repos/:repo/blob/*path"
	params := map[string]string{"org": "aegis-go", "repo": "aegis", "path": "pkg/router/router.go"}

	concrete := pattern
	for name, value := range params {
		concrete = strings.Replace(concrete, ":"+name, value, 1)
		concrete = strings.Replace(concrete, "*"+name, value, 1)
	}

	r := New(nil)
	var got map[string]string
	r.GET(pattern, func(ctx core.Context) error {
		got = map[string]string{
			"org":  ctx.Param("org"),
			"repo": ctx.Param("repo"),
			"path": ctx.Param("path"),
		}
		return ctx.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, concrete, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected the concrete path to match its pattern, got %d", rec.Code)
	}
	for name, want := range params {
		if got[name] != want {
			t.Fatalf("param %s: expected %q, got %q", name, want, got[name])
		}
	}
}

func TestRouterAppGuardsRunBeforeGroupGuards(t *testing.T) {
	r := New(nil)
	var log []string
	appGuard := guardFunc(func(ctx core.Context) (bool, error) {
		log = append(log, "app")
		return true, nil
	})
	groupGuard := guardFunc(func(ctx core.Context) (bool, error) {
		log = append(log, "group")
		return true, nil
	})

	r.UseGuards(appGuard)
	g := r.Group("/api")
	g.UseGuards(groupGuard)
	g.GET("/x", okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "ok" {
		t.Fatalf("expected handler to run, got %s (%d)", rec.Body.String(), rec.Code)
	}
	if len(log) != 2 || log[0] != "app" || log[1] != "group" {
		t.Fatalf("expected app guard before group guard, got %v", log)
	}
}

type guardFunc func(ctx core.Context) (bool, error)

func (f guardFunc) CanActivate(ctx core.Context) (bool, error) { return f(ctx) }
