package projects

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	blobs, err := blob.New(db)
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	return NewHandler(projectstore.New(db), blobs, zap.NewNop()), testutil.NewFixtures(t, db)
}

func asIdentity(s models.Student) auth.Student {
	return auth.Student{ID: s.ID, Name: s.Name, Email: s.Email}
}

func TestCreateDefaultsToPending(t *testing.T) {
	h, fx := newHandler(t)
	student := fx.CreateStudent(context.Background(), "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/projects",
		strings.NewReader(`{"title":"Thesis"}`))
	req = testutil.WithStudent(req, asIdentity(student))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var p models.Project
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != models.ProjectPending {
		t.Errorf("status should default to pending, got %q", p.Status)
	}
}

func TestCreateRejectsBadStatus(t *testing.T) {
	h, fx := newHandler(t)
	student := fx.CreateStudent(context.Background(), "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/projects",
		strings.NewReader(`{"title":"Thesis","status":"done"}`))
	req = testutil.WithStudent(req, asIdentity(student))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Status must be pending, in_progress, or completed.")
}

func TestSetStatus(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	p := fx.CreateProject(ctx, student.ID, "Thesis")

	req := testutil.NewJSONRequest(http.MethodPatch,
		"/api/projects/"+p.ID.Hex()+"/status",
		strings.NewReader(`{"status":"in_progress"}`))
	req = testutil.WithStudent(req, asIdentity(student))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleSetStatus(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"in_progress"`)
}

func TestUpdateClearsDueDate(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	p := fx.CreateProject(ctx, student.ID, "Thesis")

	// First set a due date, then update without one; it should be cleared.
	withDate := `{"title":"Thesis","description":"","status":"pending","dueDate":"2026-10-01T00:00:00Z"}`
	req := testutil.NewJSONRequest(http.MethodPut, "/api/projects/"+p.ID.Hex(), strings.NewReader(withDate))
	req = testutil.WithStudent(req, asIdentity(student))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	withoutDate := `{"title":"Thesis","description":"","status":"pending"}`
	req = testutil.NewJSONRequest(http.MethodPut, "/api/projects/"+p.ID.Hex(), strings.NewReader(withoutDate))
	req = testutil.WithStudent(req, asIdentity(student))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := h.Projects.GetOwned(ctx, p.ID, student.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("due date should be cleared, got %v", got.DueDate)
	}
}

func TestDeleteOtherOwner(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	owner := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	other := fx.CreateStudent(ctx, "Eve", "eve@test.com")
	p := fx.CreateProject(ctx, owner.ID, "Thesis")

	req := testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/api/projects/"+p.ID.Hex(), asIdentity(other))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Project not found.")
}
