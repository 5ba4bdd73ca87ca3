package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "studyhub",
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		ReminderInterval: 5 * time.Minute,
		ReminderWindow:   time.Hour,
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateConfigRejectsBadURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for non-mongodb URI")
	}
}

func TestValidateConfigRequiresJWTSecret(t *testing.T) {
	cfg := validAppConfig()
	cfg.JWTSecret = ""
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for missing jwt_secret")
	}
}

func TestValidateConfigRejectsZeroDurations(t *testing.T) {
	cfg := validAppConfig()
	cfg.ReminderInterval = 0
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for zero reminder_interval")
	}

	cfg = validAppConfig()
	cfg.ReminderWindow = -time.Minute
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for negative reminder_window")
	}
}
