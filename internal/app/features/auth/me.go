// internal/app/features/auth/me.go
package auth

import (
	"errors"
	"net/http"

	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	sysauth "github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleMe handles GET /api/auth/me. Returns the authenticated student's
// record without the credential hash.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	current, ok := sysauth.CurrentStudent(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	student, err := h.Students.GetByID(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, studentstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Student not found.")
			return
		}
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Lookup failed.")
		return
	}

	// models.Student marshals the password as json:"-", so the full model is
	// safe to return directly.
	httpjson.Write(w, http.StatusOK, student)
}
