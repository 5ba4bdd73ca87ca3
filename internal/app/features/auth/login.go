// internal/app/features/auth/login.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/auth/login.
//
// Unknown email and wrong password return the same message so the endpoint
// doesn't confirm which addresses have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	student, err := h.Students.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, studentstore.ErrNotFound) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid email or password.")
			return
		}
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	identity := sysauth.Student{ID: student.ID, Name: student.Name, Email: student.Email}
	token, err := h.Tokens.IssueToken(identity)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	httpjson.Write(w, http.StatusOK, authResponse{
		Token: token,
		Student: studentPayload{
			ID:    student.ID.Hex(),
			Name:  student.Name,
			Email: student.Email,
		},
	})
}
