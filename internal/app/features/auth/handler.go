// internal/app/features/auth/handler.go

// Package auth (feature) serves registration, login, and the current-student
// endpoint. Token mechanics live in system/auth; this package owns the HTTP
// surface and the credential hashing.
package auth

import (
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// bcryptCost matches the cost existing password hashes were created with.
const bcryptCost = 10

// Handler is the shared dependency container for the auth feature.
type Handler struct {
	Students *studentstore.Store
	Tokens   *sysauth.Manager
	Log      *zap.Logger
}

// NewHandler constructs an auth Handler. Called from bootstrap BuildHandler.
func NewHandler(students *studentstore.Store, tokens *sysauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Students: students,
		Tokens:   tokens,
		Log:      logger,
	}
}

// studentPayload is the student shape returned to clients; it never carries
// the password hash.
type studentPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// authResponse is the register/login success body.
type authResponse struct {
	Token   string         `json:"token"`
	Student studentPayload `json:"student"`
}
