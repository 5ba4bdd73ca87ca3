package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(testSecret, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewManager("", zap.NewNop()); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager(t)
	want := auth.Student{
		ID:    primitive.NewObjectID(),
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}

	tok, err := m.IssueToken(want)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	got, err := m.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newManager(t)
	other, err := auth.NewManager("another-secret-another-secret-xx", zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	tok, err := other.IssueToken(auth.Student{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := m.ParseToken(tok); err == nil {
		t.Fatal("expected verification failure for token signed with wrong secret")
	}
}

func TestRequireStudent_NoToken(t *testing.T) {
	m := newManager(t)
	h := m.RequireStudent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	}))

	req := httptest.NewRequest("GET", "/api/notes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireStudent_BearerHeader(t *testing.T) {
	m := newManager(t)
	student := auth.Student{ID: primitive.NewObjectID(), Name: "B", Email: "b@example.com"}
	tok, err := m.IssueToken(student)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	var got auth.Student
	h := m.RequireStudent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentStudent(r)
	}))

	req := httptest.NewRequest("GET", "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if got != student {
		t.Errorf("context student: got %+v, want %+v", got, student)
	}
}

func TestRequireStudent_QueryToken(t *testing.T) {
	m := newManager(t)
	student := auth.Student{ID: primitive.NewObjectID(), Name: "Q", Email: "q@example.com"}
	tok, err := m.IssueToken(student)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	called := false
	h := m.RequireStudent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/files/abc?token="+tok, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Errorf("query token rejected: called=%v status=%d", called, rec.Code)
	}
}
