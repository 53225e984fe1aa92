package core

import (
	"net/http"
	"testing"
)

func TestGroupPrefixComposition(t *testing.T) {
	tests := []struct {
		name     string
		parent   string
		child    string
		expected string
	}{
		{"plain nesting", "/api", "/v1", "/api/v1"},
		{"parent trailing slash stripped", "/api/", "/v1", "/api/v1"},
		{"child missing leading slash", "/api", "v1", "/api/v1"},
		{"empty child yields parent", "/api", "", "/api"},
		{"empty parent", "", "/v1", "/v1"},
		{"both empty is root", "", "", "/"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := NewGroup(test.parent).Child(test.child)
			if got := g.GetPrefix(); got != test.expected {
				t.Errorf("GetPrefix() = %q, want %q", got, test.expected)
			}
		})
	}
}

func TestGroupApplyPrefix(t *testing.T) {
	g := NewGroup("/api").Child("/v1")

	tests := []struct {
		path     string
		expected string
	}{
		{"", "/api/v1"},
		{"/", "/api/v1"},
		{"/users", "/api/v1/users"},
		{"users", "/api/v1/users"},
	}

	for _, test := range tests {
		if got := g.ApplyPrefix(test.path); got != test.expected {
			t.Errorf("ApplyPrefix(%q) = %q, want %q", test.path, got, test.expected)
		}
	}
}

func TestGroupApplyPrefixAtRoot(t *testing.T) {
	root := NewGroup("")
	if got := root.ApplyPrefix("/users"); got != "/users" {
		t.Errorf("ApplyPrefix at root = %q, want /users", got)
	}
	if got := root.ApplyPrefix("/"); got != "/" {
		t.Errorf("ApplyPrefix(\"/\") at root = %q, want /", got)
	}
}

func TestGroupMiddlewareParentFirst(t *testing.T) {
	var log []string
	parent := NewGroup("/api", hookMiddleware("parent", &log))
	child := parent.Child("/v1", hookMiddleware("child", &log))

	mws := child.GetMiddleware()
	if len(mws) != 2 {
		t.Fatalf("expected 2 middlewares, got %d", len(mws))
	}

	handler := Chain(func(ctx Context) error { return nil }, mws...)
	if err := handler(newTestContext(http.MethodGet, "/")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	want := []string{"before:parent", "before:child", "after:child", "after:parent"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected parent-first order %v, got %v", want, log)
		}
	}
}

func TestGroupGuardsParentFirst(t *testing.T) {
	var log []string
	parent := NewGroup("/api")
	parent.UseGuards(&verdictGuard{allow: true, log: &log, name: "parent"})
	child := parent.Child("/v1")
	child.UseGuards(&verdictGuard{allow: true, log: &log, name: "child"})

	guards := child.GetGuards()
	if len(guards) != 2 {
		t.Fatalf("expected 2 guards, got %d", len(guards))
	}
	handler := WithGuards(func(ctx Context) error { return nil }, guards...)
	if err := handler(newTestContext(http.MethodGet, "/")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if log[0] != "parent" || log[1] != "child" {
		t.Fatalf("expected parent-first guard order, got %v", log)
	}
}

func TestGroupUseAfterChildIsVisibleThroughParentWalk(t *testing.T) {
	parent := NewGroup("/api")
	child := parent.Child("/v1")
	parent.Use(hookMiddleware("late", new([]string)))

	if got := len(child.GetMiddleware()); got != 1 {
		t.Fatalf("expected child to see middleware added to parent later, got %d", got)
	}
}
