// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// ReminderEmailData holds data for deadline reminder emails.
type ReminderEmailData struct {
	SiteName    string
	StudentName string
	Title       string
	DueDate     time.Time
	Priority    string // low | medium | high
	AppURL      string
}

// BuildReminderEmail creates a deadline reminder with both HTML and text
// bodies. The recipient address is set by the caller.
func BuildReminderEmail(data ReminderEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Reminder: %q is due in less than 1 hour", data.Title),
		TextBody: buildReminderText(data),
		HTMLBody: buildReminderHTML(data),
	}
}

func buildReminderText(data ReminderEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.StudentName)
	fmt.Fprintf(&buf, "Your deadline %q is due in less than 1 hour.\n\n", data.Title)
	fmt.Fprintf(&buf, "Due: %s\n", data.DueDate.Format("Jan 2, 2006 3:04 PM"))
	fmt.Fprintf(&buf, "Priority: %s\n\n", data.Priority)
	fmt.Fprintf(&buf, "View your deadlines: %s/deadlines\n\n", data.AppURL)
	fmt.Fprintf(&buf, "You received this because you have an upcoming deadline. — %s\n", data.SiteName)
	return buf.String()
}

func buildReminderHTML(data ReminderEmailData) string {
	tmpl := template.Must(template.New("reminder").Funcs(template.FuncMap{
		"formatDue": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"priorityColor": func(p string) string {
			switch p {
			case "high":
				return "#e74c3c"
			case "medium":
				return "#f39c12"
			default:
				return "#27ae60"
			}
		},
	}).Parse(reminderHTMLTemplate))

	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const reminderHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Deadline Reminder</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 16px; color: #111827;">Hi <strong>{{.StudentName}}</strong>,</p>
              <p style="margin: 0 0 20px; color: #4b5563;">You have a deadline due in <strong>less than 1 hour</strong>.</p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f8f7ff; border-left: 4px solid #4f46e5; border-radius: 6px;">
                <tr>
                  <td style="padding: 16px 20px;">
                    <p style="margin: 0 0 8px; font-size: 17px; font-weight: 700; color: #111827;">{{.Title}}</p>
                    <p style="margin: 0; font-size: 14px; color: #6b7280;">Due: <strong style="color: #111827;">{{formatDue .DueDate}}</strong></p>
                    <p style="margin: 4px 0 0; font-size: 14px; color: #6b7280;">Priority: <strong style="color: {{priorityColor .Priority}};">{{.Priority}}</strong></p>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; text-align: center;">
                <a href="{{.AppURL}}/deadlines" style="display: inline-block; background-color: #4f46e5; color: #ffffff; padding: 11px 26px; border-radius: 6px; text-decoration: none; font-weight: 600; font-size: 15px;">View Deadlines</a>
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 16px 32px; border-top: 1px solid #e5e7eb; text-align: center;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">You received this because you have an upcoming deadline. — {{.SiteName}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
