package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
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
	return NewHandler(notestore.New(db), blobs, zap.NewNop()), testutil.NewFixtures(t, db)
}

func asIdentity(s models.Student) auth.Student {
	return auth.Student{ID: s.ID, Name: s.Name, Email: s.Email}
}

func TestCreateSanitizesContent(t *testing.T) {
	h, fx := newHandler(t)
	student := fx.CreateStudent(context.Background(), "Ada", "ada@test.com")

	body := `{"title":"XSS","content":"<p>ok</p><script>alert(1)</script>","subject":"Sec"}`
	req := testutil.NewJSONRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	req = testutil.WithStudent(req, asIdentity(student))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var note models.Note
	if err := json.NewDecoder(rec.Body).Decode(&note); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Contains(note.Content, "<script>") {
		t.Errorf("content not sanitized: %q", note.Content)
	}
	if !strings.Contains(note.Content, "<p>ok</p>") {
		t.Errorf("safe markup should survive sanitizing: %q", note.Content)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	h, fx := newHandler(t)
	student := fx.CreateStudent(context.Background(), "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"content":"x"}`))
	req = testutil.WithStudent(req, asIdentity(student))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Title is required.")
}

func TestUpdateOwnerScoped(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	owner := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	other := fx.CreateStudent(ctx, "Eve", "eve@test.com")
	note := fx.CreateNote(ctx, owner.ID, "Mine")

	body := `{"title":"Stolen","content":"","subject":""}`
	req := testutil.NewJSONRequest(http.MethodPut, "/api/notes/"+note.ID.Hex(), strings.NewReader(body))
	req = testutil.WithStudent(req, asIdentity(other))
	req = testutil.WithChiURLParam(req, "id", note.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec.ResponseRecorder, req)

	// Someone else's note is indistinguishable from a missing one.
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Note not found.")
}

func TestToggleShare(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	owner := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	note := fx.CreateNote(ctx, owner.ID, "Mine")

	toggle := func() models.Note {
		req := testutil.NewAuthenticatedRequest(http.MethodPatch,
			"/api/notes/"+note.ID.Hex()+"/share", asIdentity(owner))
		req = testutil.WithChiURLParam(req, "id", note.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleToggleShare(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusOK)
		var n models.Note
		if err := json.NewDecoder(rec.Body).Decode(&n); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return n
	}

	if n := toggle(); !n.IsShared {
		t.Error("first toggle should set isShared")
	}
	if n := toggle(); n.IsShared {
		t.Error("second toggle should clear isShared")
	}
}

func TestDeleteNote(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	owner := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	note := fx.CreateNote(ctx, owner.ID, "Mine")

	req := testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/api/notes/"+note.ID.Hex(), asIdentity(owner))
	req = testutil.WithChiURLParam(req, "id", note.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Note deleted.")

	if _, err := h.Notes.GetOwned(ctx, note.ID, owner.ID); err == nil {
		t.Error("note should be gone")
	}
}

func TestDeleteAttachmentMissing(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	owner := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	note := fx.CreateNote(ctx, owner.ID, "Mine")

	bogus := note.ID // any valid hex that isn't an attachment
	req := testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/api/notes/"+note.ID.Hex()+"/attachments/"+bogus.Hex(), asIdentity(owner))
	req = testutil.WithChiURLParam(req, "id", note.ID.Hex())
	req = testutil.WithChiURLParam(req, "fileId", bogus.Hex())
	rec := testutil.NewRecorder()
	h.HandleDeleteAttachment(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Attachment not found.")
}
