package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"github.com/dalemusser/studyhub/internal/testutil"
	"go.uber.org/zap"
)

// fakeSender records sent email and optionally fails every send.
type fakeSender struct {
	sent []mailer.Email
	fail bool
}

func (f *fakeSender) Send(email mailer.Email) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, email)
	return nil
}

func newReminder(t *testing.T, sender mailer.Sender) (*DeadlineReminder, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	w := NewDeadlineReminder(
		deadlinestore.New(db),
		studentstore.New(db),
		sender,
		zap.NewNop(),
		"StudyHub",
		"http://localhost:3000",
		time.Minute,
		time.Hour,
	)
	return w, fx
}

func TestSweepSendsOnce(t *testing.T) {
	sender := &fakeSender{}
	w, fx := newReminder(t, sender)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	now := time.Now().UTC()
	fx.CreateDeadline(ctx, student.ID, "Problem set", now.Add(30*time.Minute))

	w.Sweep(now)
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "ada@test.com" {
		t.Errorf("email to %q, want ada@test.com", sender.sent[0].To)
	}

	// Second sweep must not repeat the reminder.
	w.Sweep(now)
	if len(sender.sent) != 1 {
		t.Errorf("expected no repeat email, got %d total", len(sender.sent))
	}
}

func TestSweepSkipsOutsideWindow(t *testing.T) {
	sender := &fakeSender{}
	w, fx := newReminder(t, sender)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	now := time.Now().UTC()
	fx.CreateDeadline(ctx, student.ID, "Far future", now.Add(3*time.Hour))
	fx.CreateDeadline(ctx, student.ID, "Already due", now.Add(-time.Minute))

	w.Sweep(now)
	if len(sender.sent) != 0 {
		t.Errorf("expected no email for out-of-window deadlines, got %d", len(sender.sent))
	}
}

func TestSweepMarksSentEvenOnSendFailure(t *testing.T) {
	sender := &fakeSender{fail: true}
	w, fx := newReminder(t, sender)
	ctx := context.Background()

	student := fx.CreateStudent(ctx, "Ada", "ada@test.com")
	now := time.Now().UTC()
	fx.CreateDeadline(ctx, student.ID, "Problem set", now.Add(30*time.Minute))

	w.Sweep(now)

	sender.fail = false
	w.Sweep(now)
	if len(sender.sent) != 0 {
		t.Errorf("failed send must not be retried, got %d emails", len(sender.sent))
	}
}

func TestStartStop(t *testing.T) {
	sender := &fakeSender{}
	w, _ := newReminder(t, sender)
	w.Start()
	w.Stop()
}
