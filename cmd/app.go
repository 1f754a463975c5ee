package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/ai/gemini"
	"github.com/spigell/autohire/internal/analyzer"
	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/logger"
	"github.com/spigell/autohire/internal/mailer"
	"github.com/spigell/autohire/internal/recruiter"
	"github.com/spigell/autohire/internal/secrets"
)

// application holds the wired components shared by the subcommands.
type application struct {
	config    *Config
	logger    *zap.Logger
	analyzer  *analyzer.Analyzer
	mailer    *mailer.Mailer
	recruiter *recruiter.Service
}

func newApplication(ctx context.Context) (*application, error) {
	config, err := getConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(config.Log)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	generator, policy, maxLogLength, err := newGenerator(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}

	analyzerOpts := []analyzer.Option{analyzer.WithLogger(log.Named("analyzer"))}
	if maxLogLength > 0 {
		analyzerOpts = append(analyzerOpts, analyzer.WithMaxLogLength(maxLogLength))
	}
	// A typed nil would hide the missing backend from the analyzer.
	var gen ai.Generator
	if generator != nil {
		gen = generator
	}
	an := analyzer.New(gen, nil, policy, analyzerOpts...)

	password, err := secrets.Optional(secrets.Source{
		Name:  "smtp password",
		File:  config.Mail.PasswordFile,
		Value: config.Mail.Password,
	})
	if err != nil {
		return nil, err
	}
	sender := mailer.NewSMTPSender(config.Mail, password)
	if sender == nil {
		log.Info("smtp relay is not configured; invitations will be rendered only",
			zap.String("hint", "set mail.smtp-host in the config or AUTOHIRE_MAIL_SMTP_HOST"),
		)
	}
	m := mailer.New(config.Mail, sender, log.Named("mailer"))

	filters := config.Filters
	service := recruiter.New(an, m,
		recruiter.WithLogger(log.Named("recruiter")),
		recruiter.WithFilterConfig(&filters),
	)

	return &application{
		config:    config,
		logger:    log,
		analyzer:  an,
		mailer:    m,
		recruiter: service,
	}, nil
}

// newGenerator builds the Gemini backend. A nil generator without error means the heuristic
// path serves every request.
func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*gemini.Generator, ai.RetryPolicy, int, error) {
	policy := ai.DefaultPolicy()
	if cfg == nil || !cfg.Enabled {
		log.Info("ai backend is disabled; using heuristic analysis")
		return nil, policy, 0, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, policy, 0, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gc := cfg.Gemini
	if gc == nil {
		gc = &GeminiConfig{}
	}

	apiKey, err := secrets.Optional(secrets.Source{
		Name:  "gemini api key",
		File:  gc.APIKeyFile,
		Value: gc.APIKey,
	})
	if err != nil {
		return nil, policy, 0, err
	}
	if apiKey == "" {
		log.Warn("gemini api key is not configured; using heuristic analysis",
			zap.String("hint", "set GEMINI_API_KEY or ai.gemini.api-key-file"),
		)
		return nil, policy, 0, nil
	}

	models := make([]string, 0, 2)
	for _, model := range []string{gc.PrimaryModel, gc.FallbackModel} {
		if model = strings.TrimSpace(model); model != "" {
			models = append(models, model)
		}
	}
	if len(models) > 0 {
		policy.Models = models
	}
	if gc.Backoff > 0 {
		policy.Backoff = gc.Backoff
	}

	genLogger := logger.WithFields(log.Named("gemini"), zap.Strings("ai_models", policy.Models))
	opts := []gemini.Option{gemini.WithLogger(genLogger)}
	if gc.RequestsPerMinute > 0 {
		opts = append(opts, gemini.WithRequestsPerMinute(gc.RequestsPerMinute))
	}
	if gc.MaxLogLength > 0 {
		opts = append(opts, gemini.WithMaxLogLength(gc.MaxLogLength))
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, opts...)
	if err != nil {
		return nil, policy, 0, err
	}
	return generator, policy, gc.MaxLogLength, nil
}

// redacted returns a copy of config safe for logging.
func redacted(config *Config) *Config {
	c := *config
	if c.AI != nil {
		aiCopy := *c.AI
		if aiCopy.Gemini != nil {
			gc := *aiCopy.Gemini
			if gc.APIKey != "" {
				gc.APIKey = "***"
			}
			aiCopy.Gemini = &gc
		}
		c.AI = &aiCopy
	}
	if c.Mail.Password != "" {
		c.Mail.Password = "***"
	}
	return &c
}

// loadJobDescription reads a job description either from JSON produced by "analyze jd" or
// from a document that is analysed on the fly.
func (a *application) loadJobDescription(ctx context.Context, path string) (hiring.JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hiring.JobDescription{}, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return hiring.JobDescription{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return recruiter.DecodeJobDescription(raw)
	}

	report, err := a.recruiter.ProcessJobDescription(ctx, data, filepath.Base(path))
	if err != nil {
		return hiring.JobDescription{}, err
	}
	return report.JobDescription, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
