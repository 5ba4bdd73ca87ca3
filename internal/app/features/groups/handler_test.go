package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	groupfilestore "github.com/dalemusser/studyhub/internal/app/store/groupfiles"
	groupstore "github.com/dalemusser/studyhub/internal/app/store/groups"
	invitationstore "github.com/dalemusser/studyhub/internal/app/store/invitations"
	notestore "github.com/dalemusser/studyhub/internal/app/store/notes"
	projectstore "github.com/dalemusser/studyhub/internal/app/store/projects"
	sharestore "github.com/dalemusser/studyhub/internal/app/store/shares"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/auth"
	"github.com/dalemusser/studyhub/internal/app/system/blob"
	"github.com/dalemusser/studyhub/internal/app/system/indexes"
	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(context.Background(), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	blobs, err := blob.New(db)
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	h := NewHandler(
		groupstore.New(db),
		studentstore.New(db),
		invitationstore.New(db),
		sharestore.New(db),
		groupfilestore.New(db),
		notestore.New(db),
		projectstore.New(db),
		blobs,
		zap.NewNop(),
	)
	return h, testutil.NewFixtures(t, db)
}

func asIdentity(s models.Student) auth.Student {
	return auth.Student{ID: s.ID, Name: s.Name, Email: s.Email}
}

func TestCreateGroup(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	req := testutil.NewJSONRequest(http.MethodPost, "/api/groups",
		strings.NewReader(`{"name":"Study","description":"Algorithms"}`))
	req = testutil.WithStudent(req, asIdentity(admin))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var view struct {
		InviteCode string `json:"inviteCode"`
		Members    []struct {
			Role string `json:"role"`
		} `json:"members"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.InviteCode) != 6 || view.InviteCode != strings.ToUpper(view.InviteCode) {
		t.Errorf("invite code should be 6 uppercase chars, got %q", view.InviteCode)
	}
	if len(view.Members) != 1 || view.Members[0].Role != models.RoleAdmin {
		t.Errorf("creator should be the sole admin member, got %+v", view.Members)
	}
}

func TestCreateGroupRequiresName(t *testing.T) {
	h, fx := newHandler(t)
	admin := fx.CreateStudent(context.Background(), "Ada", "ada@test.com")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/groups", strings.NewReader(`{}`))
	req = testutil.WithStudent(req, asIdentity(admin))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Group name is required.")
}

func TestJoinTwice(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	joiner := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)

	join := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/groups/join",
			strings.NewReader(`{"inviteCode":"abc234"}`)) // lowercase input normalizes
		req = testutil.WithStudent(req, asIdentity(joiner))
		rec := testutil.NewRecorder()
		h.HandleJoin(rec.ResponseRecorder, req)
		return rec
	}

	rec := join()
	rec.AssertStatus(t, http.StatusOK)

	rec = join()
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "already a member")

	loaded, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	count := 0
	for _, m := range loaded.Members {
		if m.StudentID == joiner.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("joiner should appear exactly once, got %d", count)
	}
}

func TestJoinBadCode(t *testing.T) {
	h, fx := newHandler(t)
	joiner := fx.CreateStudent(context.Background(), "Bob", "bob@test.com")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/groups/join",
		strings.NewReader(`{"inviteCode":"ZZZZZZ"}`))
	req = testutil.WithStudent(req, asIdentity(joiner))
	rec := testutil.NewRecorder()
	h.HandleJoin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Invalid invite code.")
}

func TestInviteAcceptAndRespondTwice(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	invitee := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)

	// Admin invites by email.
	req := testutil.NewJSONRequest(http.MethodPost, "/api/groups/"+g.ID.Hex()+"/invite",
		strings.NewReader(`{"email":"bob@test.com"}`))
	req = testutil.WithStudent(req, asIdentity(admin))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleInvite(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var inv struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&inv); err != nil {
		t.Fatalf("decode invitation: %v", err)
	}

	respond := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPatch,
			"/api/groups/invitations/"+inv.ID+"/respond",
			strings.NewReader(`{"status":"accepted"}`))
		req = testutil.WithStudent(req, asIdentity(invitee))
		req = testutil.WithChiURLParam(req, "invId", inv.ID)
		rec := testutil.NewRecorder()
		h.HandleRespond(rec.ResponseRecorder, req)
		return rec
	}

	rec = respond()
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Invitation accepted.")

	loaded, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	found := false
	for _, m := range loaded.Members {
		if m.StudentID == invitee.ID && m.Role == models.RoleMember {
			found = true
		}
	}
	if !found {
		t.Error("invitee should be a member after accepting")
	}

	// Second respond hits a no-longer-pending invitation.
	rec = respond()
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Invitation not found or already responded.")
}

func TestInviteRules(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	member := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	fx.AddGroupMember(ctx, g.ID, member.ID)

	invite := func(as models.Student, email string) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/groups/"+g.ID.Hex()+"/invite",
			strings.NewReader(`{"email":"`+email+`"}`))
		req = testutil.WithStudent(req, asIdentity(as))
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleInvite(rec.ResponseRecorder, req)
		return rec
	}

	// Non-admin member may not invite.
	rec := invite(member, "ada@test.com")
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "Only the group admin can invite members.")

	// Unknown email.
	rec = invite(admin, "ghost@test.com")
	rec.AssertStatus(t, http.StatusNotFound)

	// Self-invite.
	rec = invite(admin, "ada@test.com")
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "You cannot invite yourself.")

	// Already a member.
	rec = invite(admin, "bob@test.com")
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "is already a member.")

	// Duplicate pending invitation.
	outsider := fx.CreateStudent(ctx, "Cam", "cam@test.com")
	_ = outsider
	rec = invite(admin, "cam@test.com")
	rec.AssertStatus(t, http.StatusCreated)
	rec = invite(admin, "cam@test.com")
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "pending invitation already exists")
}

func TestDuplicateShare(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	note := fx.CreateNote(ctx, admin.ID, "Shared note")

	share := func() *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/groups/"+g.ID.Hex()+"/share",
			strings.NewReader(`{"resourceType":"note","resourceId":"`+note.ID.Hex()+`"}`))
		req = testutil.WithStudent(req, asIdentity(admin))
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleShare(rec.ResponseRecorder, req)
		return rec
	}

	rec := share()
	rec.AssertStatus(t, http.StatusCreated)

	rec = share()
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Already shared to this group.")

	n, err := fx.DB().Collection("group_resources").CountDocuments(ctx, bson.M{"group_id": g.ID})
	if err != nil {
		t.Fatalf("count shares: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one share record, got %d", n)
	}
}

func TestGroupDetailAccess(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	outsider := fx.CreateStudent(ctx, "Eve", "eve@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/api/groups/"+g.ID.Hex(), asIdentity(outsider))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDetail(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "Access denied. Not a member.")
}

func TestCascadeDelete(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	invitee := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	note := fx.CreateNote(ctx, admin.ID, "Shared note")
	fx.CreateShare(ctx, g.ID, models.ResourceNote, note.ID, admin.ID)
	fx.CreateInvitation(ctx, g.ID, admin.ID, invitee.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/groups/"+g.ID.Hex(), asIdentity(admin))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Group deleted.")

	for _, coll := range []string{"groups", "group_resources", "group_invitations", "group_files"} {
		filter := bson.M{"group_id": g.ID}
		if coll == "groups" {
			filter = bson.M{"_id": g.ID}
		}
		n, err := fx.DB().Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("%s should be empty after cascade, got %d", coll, n)
		}
	}

	// Detail after delete is a 404 for any caller.
	req = testutil.NewAuthenticatedRequest(http.MethodGet, "/api/groups/"+g.ID.Hex(), asIdentity(admin))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDetail(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	member := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	fx.AddGroupMember(ctx, g.ID, member.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/api/groups/"+g.ID.Hex(), asIdentity(member))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "Only the group admin can delete this group.")
}

func TestFileDeleteUploaderOnly(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	member := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	fx.AddGroupMember(ctx, g.ID, member.ID)

	// Member uploads through the blob store directly, then records it the
	// way the upload handler does.
	fileID, err := h.Blobs.Upload("1-notes.txt", strings.NewReader("hello"), blob.Metadata{
		ContentType: "text/plain",
		EntityType:  "group",
		EntityID:    g.ID.Hex(),
		UploadedBy:  member.ID.Hex(),
	})
	if err != nil {
		t.Fatalf("upload blob: %v", err)
	}
	gf, err := h.GroupFiles.Create(ctx, models.GroupFile{
		GroupID:      g.ID,
		FileID:       fileID,
		Filename:     "1-notes.txt",
		OriginalName: "notes.txt",
		Mimetype:     "text/plain",
		Size:         5,
		UploadedBy:   member.ID,
	})
	if err != nil {
		t.Fatalf("create group file: %v", err)
	}

	del := func(as models.Student) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(http.MethodDelete,
			"/api/groups/"+g.ID.Hex()+"/files/"+gf.ID.Hex(), asIdentity(as))
		req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
		req = testutil.WithChiURLParam(req, "fileId", gf.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleDeleteFile(rec.ResponseRecorder, req)
		return rec
	}

	// Even the group admin is refused.
	rec := del(admin)
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "Only the uploader can delete this file.")

	rec = del(member)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "File deleted.")

	// Blob reference is gone.
	if _, err := h.Blobs.Stat(ctx, fileID); err == nil {
		t.Error("blob should be released after file delete")
	}
}

func TestLeaveGroup(t *testing.T) {
	h, fx := newHandler(t)
	ctx := context.Background()

	admin := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	member := fx.CreateStudent(ctx, "Bob", "bob@test.com")
	g := fx.CreateGroup(ctx, "Study", "ABC234", admin.ID)
	fx.AddGroupMember(ctx, g.ID, member.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/api/groups/"+g.ID.Hex()+"/leave", asIdentity(member))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleLeave(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "You have left the group.")

	loaded, err := h.Groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	for _, m := range loaded.Members {
		if m.StudentID == member.ID {
			t.Error("member should be gone after leaving")
		}
	}

	// Leaving again is a silent success.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/api/groups/"+g.ID.Hex()+"/leave", asIdentity(member))
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleLeave(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}
