package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the encoder, level and destination of the process logger.
type Config struct {
	JSON   bool   `mapstructure:"json"`
	Debug  bool   `mapstructure:"debug"`
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

func (c Config) level() (zapcore.Level, error) {
	if c.Debug {
		return zapcore.DebugLevel, nil
	}
	if strings.TrimSpace(c.Level) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.TrimSpace(c.Level))
}

func New(c Config) (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encoding := "console"
	if c.JSON {
		encoding = "json"
	}

	output := strings.TrimSpace(c.Output)
	if output == "" {
		output = "stdout"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}
