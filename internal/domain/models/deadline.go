// internal/domain/models/deadline.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deadline priorities and statuses.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DeadlineUpcoming  = "upcoming"
	DeadlineCompleted = "completed"
	DeadlineMissed    = "missed"
)

// Deadline is a per-student dated task. ReminderSent flips once the reminder
// worker has attempted an email for it, so each deadline is reminded at most
// once.
type Deadline struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"studentId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     time.Time          `bson:"due_date" json:"dueDate"`
	Priority    string             `bson:"priority" json:"priority"`
	Status      string             `bson:"status" json:"status"`

	ReminderSent bool `bson:"reminder_sent" json:"reminderSent"`

	Attachments []Attachment `bson:"attachments" json:"attachments"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
