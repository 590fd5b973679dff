package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openedu/essaygrade/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewAuthService("test-secret")
	tok, err := svc.IssueJWT("teacher1", "teacher")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Sub != "teacher1" || c.Role != "teacher" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	tok, _ := NewAuthService("secret-a").IssueJWT("u", "student")
	if _, err := NewAuthService("secret-b").Parse(tok); err == nil {
		t.Fatalf("token signed with another key must not parse")
	}
}

func TestJWTMiddlewareAttachesContext(t *testing.T) {
	svc := NewAuthService("test-secret")
	tok, _ := svc.IssueJWT("student7", "student")

	var gotSub, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	JWTMiddleware(svc)(next).ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	if gotSub != "student7" || gotRole != "student" {
		t.Fatalf("context sub=%q role=%q", gotSub, gotRole)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	svc := NewAuthService("test-secret")
	rr := httptest.NewRecorder()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	JWTMiddleware(svc)(next).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 without bearer, got %d (called=%v)", rr.Code, called)
	}
}
