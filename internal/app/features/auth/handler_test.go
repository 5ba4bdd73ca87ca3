package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := sysauth.NewManager("test-secret-at-least-32-chars-long!!", zap.NewNop())
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return NewHandler(studentstore.New(db), tokens, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestRegister(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"name":"Ada","email":"Ada@Test.com","password":"secret123"}`
	req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Token   string `json:"token"`
		Student struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"student"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Student.Email != "ada@test.com" {
		t.Errorf("email not normalized: %q", resp.Student.Email)
	}

	// The token must parse back to the same student.
	parsed, err := h.Tokens.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if parsed.ID.Hex() != resp.Student.ID {
		t.Errorf("token id %s != student id %s", parsed.ID.Hex(), resp.Student.ID)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ada"}`))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "All fields are required.")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"name":"Ada","email":"ada@test.com","password":"secret123"}`
	req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	req = testutil.NewJSONRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec = testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Email is already registered.")
}

func TestLogin(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)
	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	_, err := fx.DB().Collection("students").UpdateByID(ctx, student.ID,
		map[string]any{"$set": map[string]any{"password": string(hashed)}})
	if err != nil {
		t.Fatalf("set password: %v", err)
	}

	req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@test.com","password":"secret123"}`))
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"token"`)
}

func TestLoginBadCredentials(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)
	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	_, _ = fx.DB().Collection("students").UpdateByID(ctx, student.ID,
		map[string]any{"$set": map[string]any{"password": string(hashed)}})

	// Unknown email and wrong password yield the same message.
	for _, body := range []string{
		`{"email":"nobody@test.com","password":"secret123"}`,
		`{"email":"ada@test.com","password":"wrong"}`,
	} {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := testutil.NewRecorder()
		h.HandleLogin(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusBadRequest)
		rec.AssertContains(t, "Invalid email or password.")
	}
}

func TestMe(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/auth/me",
		sysauth.Student{ID: student.ID, Name: student.Name, Email: student.Email})
	rec := testutil.NewRecorder()
	h.HandleMe(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "ada@test.com")
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not expose the password hash")
	}
}
