// internal/app/system/workers/deadlinereminder.go
package workers

import (
	"context"
	"sync"
	"time"

	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"github.com/dalemusser/studyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// DeadlineReminder is a background worker that emails students about
// deadlines due within the reminder window. Each deadline is reminded at
// most once: the sent flag is set after the delivery attempt regardless of
// outcome, so SMTP trouble produces a log line rather than repeat mail.
type DeadlineReminder struct {
	deadlines *deadlinestore.Store
	students  *studentstore.Store
	sender    mailer.Sender
	log       *zap.Logger

	siteName string
	appURL   string
	interval time.Duration
	window   time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDeadlineReminder creates a reminder worker.
//
// Parameters:
//   - interval: how often to sweep for due deadlines (e.g., 1 minute)
//   - window: how far ahead of the due date reminders fire (e.g., 1 hour)
func NewDeadlineReminder(
	deadlines *deadlinestore.Store,
	students *studentstore.Store,
	sender mailer.Sender,
	logger *zap.Logger,
	siteName, appURL string,
	interval, window time.Duration,
) *DeadlineReminder {
	return &DeadlineReminder{
		deadlines: deadlines,
		students:  students,
		sender:    sender,
		log:       logger,
		siteName:  siteName,
		appURL:    appURL,
		interval:  interval,
		window:    window,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *DeadlineReminder) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("deadline reminder worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("window", w.window))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *DeadlineReminder) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("deadline reminder worker stopped")
}

func (w *DeadlineReminder) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep(time.Now().UTC())
		}
	}
}

// Sweep finds unreminded deadlines due within the window and emails their
// owners. Exported so tests can drive a sweep without the ticker.
func (w *DeadlineReminder) Sweep(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	due, err := w.deadlines.DueSoon(ctx, now, w.window)
	if err != nil {
		w.log.Error("reminder sweep query failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	sent := 0
	for _, d := range due {
		student, err := w.students.GetByID(ctx, d.StudentID)
		if err != nil {
			w.log.Warn("reminder skipped, owner lookup failed",
				zap.String("deadline_id", d.ID.Hex()),
				zap.Error(err))
			// Still mark it, so an orphaned deadline doesn't wedge the sweep.
			if err := w.deadlines.MarkReminderSent(ctx, d.ID); err != nil {
				w.log.Error("failed to mark reminder sent", zap.Error(err))
			}
			continue
		}

		email := mailer.BuildReminderEmail(mailer.ReminderEmailData{
			SiteName:    w.siteName,
			StudentName: student.Name,
			Title:       d.Title,
			DueDate:     d.DueDate,
			Priority:    d.Priority,
			AppURL:      w.appURL,
		})
		email.To = student.Email

		if err := w.sender.Send(email); err != nil {
			w.log.Error("reminder email failed",
				zap.String("deadline_id", d.ID.Hex()),
				zap.String("to", student.Email),
				zap.Error(err))
		} else {
			sent++
		}

		if err := w.deadlines.MarkReminderSent(ctx, d.ID); err != nil {
			w.log.Error("failed to mark reminder sent",
				zap.String("deadline_id", d.ID.Hex()),
				zap.Error(err))
		}
	}

	w.log.Info("reminder sweep finished",
		zap.Int("due", len(due)),
		zap.Int("sent", sent))
}
