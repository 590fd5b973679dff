package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerRoles(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("teacher", "grade:run") {
		t.Fatalf("teacher should grade")
	}
	if c.Has("student", "grade:run") {
		t.Fatalf("student must not grade")
	}
	if !c.Has("student", "count:run") {
		t.Fatalf("student should run the live counter")
	}
	if !c.Has("admin", "anything:at_all") {
		t.Fatalf("admin wildcard broken")
	}
	if c.Has("nobody", "count:run") {
		t.Fatalf("unknown role must have nothing")
	}
}

func TestCheckerPrefixWildcard(t *testing.T) {
	c := NewChecker(map[string][]string{"editor": {"glossary:*"}})
	if !c.Has("editor", "glossary:write") || c.Has("editor", "grade:run") {
		t.Fatalf("prefix wildcard scoping wrong")
	}
}

func TestRequireMiddleware(t *testing.T) {
	ok := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ok = true })

	req := httptest.NewRequest("POST", "/grade", nil)
	req = req.WithContext(WithRole(req.Context(), "teacher"))
	rr := httptest.NewRecorder()
	Require("grade:run")(next).ServeHTTP(rr, req)
	if !ok || rr.Code != 200 {
		t.Fatalf("teacher should pass, got %d", rr.Code)
	}

	ok = false
	req = httptest.NewRequest("POST", "/grade", nil)
	req = req.WithContext(WithRole(req.Context(), "student"))
	rr = httptest.NewRecorder()
	Require("grade:run")(next).ServeHTTP(rr, req)
	if ok || rr.Code != http.StatusForbidden {
		t.Fatalf("student should be forbidden, got %d", rr.Code)
	}
}
