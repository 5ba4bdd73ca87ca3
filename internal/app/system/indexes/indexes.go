// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are load-bearing: invite-code uniqueness, the
one-pending-invitation rule, and the share triple are enforced at the
storage level, not by application pre-checks (which race under concurrent
requests).
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureStudents(ctx, db); err != nil {
		problems = append(problems, "students: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureInvitations(ctx, db); err != nil {
		problems = append(problems, "group_invitations: "+err.Error())
	}
	if err := ensureShares(ctx, db); err != nil {
		problems = append(problems, "group_resources: "+err.Error())
	}
	if err := ensureGroupFiles(ctx, db); err != nil {
		problems = append(problems, "group_files: "+err.Error())
	}
	if err := ensureNotes(ctx, db); err != nil {
		problems = append(problems, "notes: "+err.Error())
	}
	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureDeadlines(ctx, db); err != nil {
		problems = append(problems, "deadlines: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				continue
			}
			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", sig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureStudents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("students")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all students
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_students_email"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("groups")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Invite codes are globally unique; the group store regenerates on
		// collision.
		{
			Keys:    bson.D{{Key: "invite_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_groups_invite_code"),
		},
		// "my groups" lookups run against the embedded members array.
		{
			Keys:    bson.D{{Key: "members.student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_groups_member_created"),
		},
	})
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_invitations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One pending invitation per (group, invitee). Resolved invitations
		// fall out of the partial filter, so a student can be re-invited
		// after rejecting.
		{
			Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "invited_user", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending"}).
				SetName("uniq_invitations_pending"),
		},
		// Invitee inbox: pending invitations, newest first.
		{
			Keys:    bson.D{{Key: "invited_user", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_invitations_invitee_status_created"),
		},
		// Admin view and the delete cascade scan by group.
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_invitations_group_created"),
		},
	})
}

func ensureShares(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_resources")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// A resource may be shared into a group at most once.
		{
			Keys: bson.D{
				{Key: "group_id", Value: 1},
				{Key: "resource_type", Value: 1},
				{Key: "resource_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_shares_triple"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "shared_at", Value: -1}},
			Options: options.Index().SetName("idx_shares_group_shared"),
		},
	})
}

func ensureGroupFiles(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_files")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "uploaded_at", Value: -1}},
			Options: options.Index().SetName("idx_group_files_group_uploaded"),
		},
	})
}

func ensureNotes(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_notes_student_updated"),
		},
	})
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("projects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_projects_student_updated"),
		},
	})
}

func ensureDeadlines(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("deadlines")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "due_date", Value: 1}},
			Options: options.Index().SetName("idx_deadlines_student_due"),
		},
		// Reminder sweep: due-soon deadlines that have not been reminded.
		{
			Keys: bson.D{
				{Key: "reminder_sent", Value: 1},
				{Key: "due_date", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_deadlines_reminder_due_status"),
		},
	})
}
