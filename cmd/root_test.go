package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/mailer"
	"github.com/spigell/autohire/internal/server"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		t.Fatalf("bind env: %v", err)
	}
	return v
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig(newTestViper(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Log.Output != "stderr" {
		t.Fatalf("expected %q, got %q", "stderr", config.Log.Output)
	}
	if config.AI == nil || !config.AI.Enabled || config.AI.Gemini == nil {
		t.Fatalf("expected gemini to be enabled by default, got %+v", config.AI)
	}
	if config.AI.Gemini.PrimaryModel != ai.DefaultPrimaryModel {
		t.Fatalf("expected %q, got %q", ai.DefaultPrimaryModel, config.AI.Gemini.PrimaryModel)
	}
	if config.AI.Gemini.Backoff != ai.DefaultBackoff {
		t.Fatalf("expected backoff %s, got %s", ai.DefaultBackoff, config.AI.Gemini.Backoff)
	}
	if config.Mail.FromAddress != mailer.DefaultFromAddress {
		t.Fatalf("expected %q, got %q", mailer.DefaultFromAddress, config.Mail.FromAddress)
	}
	if config.Server.Address != server.DefaultAddress || config.Server.BodyLimit != server.DefaultBodyLimit {
		t.Fatalf("unexpected server config: %+v", config.Server)
	}
	if config.Filters.MinScore != nil {
		t.Fatalf("expected no minimum score, got %d", *config.Filters.MinScore)
	}
}

func TestGetConfigEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-from-env")
	t.Setenv("SMTP_PASSWORD", "smtp-secret")
	t.Setenv("AUTOHIRE_MAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("AUTOHIRE_AI_GEMINI_BACKOFF", "3s")
	t.Setenv("AUTOHIRE_SERVER_ADDRESS", ":8080")
	t.Setenv("AUTOHIRE_FILTERS_MIN_SCORE", "60")

	config, err := getConfig(newTestViper(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.AI.Gemini.APIKey != "key-from-env" {
		t.Fatalf("expected %q, got %q", "key-from-env", config.AI.Gemini.APIKey)
	}
	if config.AI.Gemini.Backoff != 3*time.Second {
		t.Fatalf("expected backoff 3s, got %s", config.AI.Gemini.Backoff)
	}
	if config.Mail.Password != "smtp-secret" || config.Mail.SMTPHost != "smtp.example.com" {
		t.Fatalf("unexpected mail config: %+v", config.Mail)
	}
	if config.Server.Address != ":8080" {
		t.Fatalf("expected %q, got %q", ":8080", config.Server.Address)
	}
	if config.Filters.MinScore == nil || *config.Filters.MinScore != 60 {
		t.Fatalf("expected minimum score 60, got %v", config.Filters.MinScore)
	}
}

func TestConfigFile(t *testing.T) {
	v := newTestViper(t)
	v.SetConfigType("yaml")
	yaml := `
ai:
  enabled: false
mail:
  smtp-port: 2525
filters:
  min-score: 40
`
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatalf("read config: %v", err)
	}

	config, err := getConfig(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.AI.Enabled {
		t.Fatal("expected ai to be disabled")
	}
	if config.Mail.SMTPPort != 2525 {
		t.Fatalf("expected port 2525, got %d", config.Mail.SMTPPort)
	}
	if config.Filters.MinScore == nil || *config.Filters.MinScore != 40 {
		t.Fatalf("expected minimum score 40, got %v", config.Filters.MinScore)
	}
}

func TestRedacted(t *testing.T) {
	config := &Config{
		AI:   &AIConfig{Gemini: &GeminiConfig{APIKey: "secret-key"}},
		Mail: mailer.Config{Password: "secret-password"},
	}

	safe := redacted(config)
	if safe.AI.Gemini.APIKey != "***" || safe.Mail.Password != "***" {
		t.Fatalf("expected secrets to be masked, got %+v", safe)
	}
	if config.AI.Gemini.APIKey != "secret-key" || config.Mail.Password != "secret-password" {
		t.Fatal("expected the input config to stay untouched")
	}
}
