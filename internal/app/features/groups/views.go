// internal/app/features/groups/views.go
package groups

import (
	"context"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// personRef is a student reference resolved to display data. Clients
// receive it where the stored document only holds an id.
type personRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// memberView keeps the studentId key clients already read, but carries the
// resolved student instead of a bare id.
type memberView struct {
	Student  personRef `json:"studentId"`
	Role     string    `json:"role"`
	JoinedAt string    `json:"joinedAt"`
}

type groupView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	InviteCode  string       `json:"inviteCode"`
	CreatedBy   personRef    `json:"createdBy"`
	Members     []memberView `json:"members"`
	CreatedAt   string       `json:"createdAt"`
}

type invitationView struct {
	ID      string `json:"id"`
	Group   *struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		InviteCode string `json:"inviteCode"`
	} `json:"groupId,omitempty"`
	InvitedBy   personRef `json:"invitedBy"`
	InvitedUser personRef `json:"invitedUser"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"createdAt"`
}

type shareView struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId"`
	SharedBy     personRef `json:"sharedBy"`
	SharedAt     string    `json:"sharedAt"`
	Resource     any       `json:"resource"`
}

type groupFileView struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	FileID       string    `json:"fileId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedBy   personRef `json:"uploadedBy"`
	UploadedAt   string    `json:"uploadedAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func refFor(id primitive.ObjectID, students map[primitive.ObjectID]models.Student) personRef {
	ref := personRef{ID: id.Hex()}
	if s, ok := students[id]; ok {
		ref.Name = s.Name
		ref.Email = s.Email
	}
	return ref
}

// groupToView resolves creator and member display data for one group.
func (h *Handler) groupToView(ctx context.Context, g models.Group) (groupView, error) {
	ids := make([]primitive.ObjectID, 0, len(g.Members)+1)
	ids = append(ids, g.CreatedBy)
	for _, m := range g.Members {
		ids = append(ids, m.StudentID)
	}
	students, err := h.Students.GetByIDs(ctx, ids)
	if err != nil {
		return groupView{}, err
	}

	members := make([]memberView, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, memberView{
			Student:  refFor(m.StudentID, students),
			Role:     m.Role,
			JoinedAt: m.JoinedAt.UTC().Format(timeLayout),
		})
	}

	return groupView{
		ID:          g.ID.Hex(),
		Name:        g.Name,
		Description: g.Description,
		InviteCode:  g.InviteCode,
		CreatedBy:   refFor(g.CreatedBy, students),
		Members:     members,
		CreatedAt:   g.CreatedAt.UTC().Format(timeLayout),
	}, nil
}

// groupsToViews resolves a batch of groups with one student lookup.
func (h *Handler) groupsToViews(ctx context.Context, gs []models.Group) ([]groupView, error) {
	idSet := map[primitive.ObjectID]struct{}{}
	for _, g := range gs {
		idSet[g.CreatedBy] = struct{}{}
		for _, m := range g.Members {
			idSet[m.StudentID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	students, err := h.Students.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]groupView, 0, len(gs))
	for _, g := range gs {
		members := make([]memberView, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, memberView{
				Student:  refFor(m.StudentID, students),
				Role:     m.Role,
				JoinedAt: m.JoinedAt.UTC().Format(timeLayout),
			})
		}
		views = append(views, groupView{
			ID:          g.ID.Hex(),
			Name:        g.Name,
			Description: g.Description,
			InviteCode:  g.InviteCode,
			CreatedBy:   refFor(g.CreatedBy, students),
			Members:     members,
			CreatedAt:   g.CreatedAt.UTC().Format(timeLayout),
		})
	}
	return views, nil
}

func invitationToView(inv models.Invitation, g *models.Group, students map[primitive.ObjectID]models.Student) invitationView {
	v := invitationView{
		ID:          inv.ID.Hex(),
		InvitedBy:   refFor(inv.InvitedBy, students),
		InvitedUser: refFor(inv.InvitedUser, students),
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt.UTC().Format(timeLayout),
	}
	if g != nil {
		v.Group = &struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			InviteCode string `json:"inviteCode"`
		}{ID: g.ID.Hex(), Name: g.Name, InviteCode: g.InviteCode}
	}
	return v
}
