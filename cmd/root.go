package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/filtering"
	"github.com/spigell/autohire/internal/logger"
	"github.com/spigell/autohire/internal/mailer"
	"github.com/spigell/autohire/internal/server"
)

const (
	app       = "autohire"
	envPrefix = "AUTOHIRE"
)

type Config struct {
	Log     logger.Config    `mapstructure:"log"`
	AI      *AIConfig        `mapstructure:"ai"`
	Mail    mailer.Config    `mapstructure:"mail"`
	Server  server.Config    `mapstructure:"server"`
	Filters filtering.Config `mapstructure:"filters"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey            string        `mapstructure:"api-key"`
	APIKeyFile        string        `mapstructure:"api-key-file"`
	PrimaryModel      string        `mapstructure:"primary-model"`
	FallbackModel     string        `mapstructure:"fallback-model"`
	Backoff           time.Duration `mapstructure:"backoff"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute"`
	MaxLogLength      int           `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "autohire screens CVs against job descriptions and schedules interviews",
		Long: `autohire extracts text from PDF, DOCX and ODT documents, analyses job descriptions
and CVs with Gemini (falling back to local heuristics), and sends interview invitations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is autohire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.primary-model", ai.DefaultPrimaryModel)
	v.SetDefault("ai.gemini.fallback-model", ai.DefaultFallbackModel)
	v.SetDefault("ai.gemini.backoff", ai.DefaultBackoff)
	v.SetDefault("ai.gemini.requests-per-minute", 0)
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetDefault("mail.from-name", mailer.DefaultFromName)
	v.SetDefault("mail.from-address", mailer.DefaultFromAddress)
	v.SetDefault("mail.smtp-host", "")
	v.SetDefault("mail.smtp-port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.password-file", "")
	v.SetDefault("mail.office-address", mailer.DefaultOfficeAddress)
	v.SetDefault("mail.meeting-link", mailer.DefaultMeetingLink)

	v.SetDefault("server.address", server.DefaultAddress)
	v.SetDefault("server.body-limit", server.DefaultBodyLimit)
	v.SetDefault("server.read-timeout", server.DefaultReadTimeout)
	v.SetDefault("server.write-timeout", server.DefaultWriteTimeout)
	v.SetDefault("server.allow-origins", "*")
}

// bindEnv maps AUTOHIRE_SECTION_KEY variables onto config keys and keeps the conventional
// names used by the Gemini SDK and mail tooling.
func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"ai.gemini.api-key":      {"AUTOHIRE_AI_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"ai.gemini.api-key-file": {"AUTOHIRE_AI_GEMINI_API_KEY_FILE", "GEMINI_API_KEY_FILE"},
		"mail.password":          {"AUTOHIRE_MAIL_PASSWORD", "SMTP_PASSWORD"},
		"mail.password-file":     {"AUTOHIRE_MAIL_PASSWORD_FILE", "SMTP_PASSWORD_FILE"},
		"filters.min-score":      {"AUTOHIRE_FILTERS_MIN_SCORE"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("binding %s environment variables: %w", key, err)
		}
	}
	return nil
}

func initConfig() error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if err := bindEnv(viper.GetViper()); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}
