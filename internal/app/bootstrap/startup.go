// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	deadlinestore "github.com/dalemusser/studyhub/internal/app/store/deadlines"
	studentstore "github.com/dalemusser/studyhub/internal/app/store/students"
	"github.com/dalemusser/studyhub/internal/app/system/mailer"
	"github.com/dalemusser/studyhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// reminderWorker is started here and stopped in Shutdown.
var reminderWorker *workers.DeadlineReminder

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. StudyHub
// uses it to start the deadline reminder worker, which sweeps for deadlines
// approaching their due date and emails the owner once per deadline.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	sender := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	reminderWorker = workers.NewDeadlineReminder(
		deadlinestore.New(deps.MongoDatabase),
		studentstore.New(deps.MongoDatabase),
		sender,
		logger,
		appCfg.SiteName,
		appCfg.BaseURL,
		appCfg.ReminderInterval,
		appCfg.ReminderWindow,
	)
	reminderWorker.Start()

	logger.Info("deadline reminder worker started",
		zap.Duration("interval", appCfg.ReminderInterval),
		zap.Duration("window", appCfg.ReminderWindow))

	return nil
}
