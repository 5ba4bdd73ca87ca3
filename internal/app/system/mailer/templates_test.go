package mailer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/studyhub/internal/app/system/mailer"
)

func TestBuildReminderEmail(t *testing.T) {
	due := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	email := mailer.BuildReminderEmail(mailer.ReminderEmailData{
		SiteName:    "StudyHub",
		StudentName: "Ada",
		Title:       "Algorithms problem set",
		DueDate:     due,
		Priority:    "high",
		AppURL:      "http://localhost:3000",
	})

	if !strings.Contains(email.Subject, "Algorithms problem set") {
		t.Errorf("subject missing title: %q", email.Subject)
	}
	for _, body := range []string{email.TextBody, email.HTMLBody} {
		if !strings.Contains(body, "Ada") {
			t.Errorf("body missing student name: %q", body)
		}
		if !strings.Contains(body, "Algorithms problem set") {
			t.Errorf("body missing title")
		}
		if !strings.Contains(body, "Mar 14, 2026") {
			t.Errorf("body missing formatted due date")
		}
	}
	if !strings.Contains(email.HTMLBody, "#e74c3c") {
		t.Errorf("high priority should use the high-priority color")
	}
}

func TestBuildReminderEmail_EscapesHTML(t *testing.T) {
	email := mailer.BuildReminderEmail(mailer.ReminderEmailData{
		SiteName:    "StudyHub",
		StudentName: "<script>alert(1)</script>",
		Title:       "t",
		DueDate:     time.Now(),
		Priority:    "low",
		AppURL:      "http://localhost:3000",
	})
	if strings.Contains(email.HTMLBody, "<script>") {
		t.Error("HTML body must escape user-supplied names")
	}
}
