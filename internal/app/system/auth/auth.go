// internal/app/system/auth/auth.go

// Package auth issues and verifies the bearer tokens that carry student
// identity, and injects the current student into the request context.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 7 * 24 * time.Hour

// Student is the identity claim carried by a token and injected into
// r.Context().
type Student struct {
	ID    primitive.ObjectID
	Name  string
	Email string
}

type ctxKey string

const currentStudentKey ctxKey = "currentStudent"

// claims is the JWT payload. The id/name/email fields mirror what clients
// already decode out of the token.
type claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewManager constructs a Manager. The secret must be non-empty; short
// secrets are accepted with a warning so local dev keeps working.
func NewManager(secret string, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &Manager{secret: []byte(secret), ttl: TokenTTL, log: logger}, nil
}

// IssueToken returns a signed token for the student.
func (m *Manager) IssueToken(s Student) (string, error) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID:    s.ID.Hex(),
		Name:  s.Name,
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return tok.SignedString(m.secret)
}

// ParseToken verifies a token string and returns the student it names.
func (m *Manager) ParseToken(tokenString string) (Student, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Student{}, err
	}
	if !tok.Valid {
		return Student{}, fmt.Errorf("token is not valid")
	}
	id, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return Student{}, fmt.Errorf("token id claim: %w", err)
	}
	return Student{ID: id, Name: c.Name, Email: c.Email}, nil
}

// CurrentStudent returns the student from context and a found flag.
func CurrentStudent(r *http.Request) (Student, bool) {
	s, ok := r.Context().Value(currentStudentKey).(Student)
	return s, ok
}

// RequireStudent verifies the bearer token (Authorization header, or a
// ?token= query parameter for direct file links) and injects the student
// into context. Missing or bad tokens get a 401 JSON error.
func (m *Manager) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			tokenString = r.URL.Query().Get("token")
		}
		if tokenString == "" {
			httpjson.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		student, err := m.ParseToken(tokenString)
		if err != nil {
			m.log.Debug("token rejected", zap.Error(err))
			httpjson.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		next.ServeHTTP(w, withStudent(r, student))
	})
}

// WithTestStudent injects a student into the request context, bypassing
// token verification. Tests only.
func WithTestStudent(r *http.Request, s Student) *http.Request {
	return withStudent(r, s)
}

func withStudent(r *http.Request, s Student) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentStudentKey, s))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
