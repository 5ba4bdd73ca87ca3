package health

import (
	"net/http"
	"testing"

	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHealthOK(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Client(), zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"database":"connected"`)
}
