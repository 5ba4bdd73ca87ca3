// internal/app/features/auth/register.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister handles POST /api/auth/register.
//
// Creates the student account, hashes the password, and returns a token plus
// the student payload. Duplicate email is a 400, matching what clients
// already display.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	student, err := h.Students.Create(r.Context(), models.Student{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	})
	if err != nil {
		if errors.Is(err, studentstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusBadRequest, "Email is already registered.")
			return
		}
		h.Log.Error("student create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	identity := sysauth.Student{ID: student.ID, Name: student.Name, Email: student.Email}
	token, err := h.Tokens.IssueToken(identity)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	httpjson.Write(w, http.StatusCreated, authResponse{
		Token: token,
		Student: studentPayload{
			ID:    student.ID.Hex(),
			Name:  student.Name,
			Email: student.Email,
		},
	})
}
