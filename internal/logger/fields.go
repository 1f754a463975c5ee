package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/hiring"
)

// Field keys shared by every analysis log line.
const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldPath      = "ai_path"
	FieldOperation = "ai_operation"
)

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithAI tags logger with the backend that serves a request. Blank values are skipped.
func WithAI(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, nonBlank(FieldProvider, provider, FieldModel, model)...)
}

// Path records which analysis path produced a result.
func Path(source hiring.Source) zap.Field {
	return zap.String(FieldPath, string(source))
}

func nonBlank(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if value := strings.TrimSpace(pairs[i+1]); value != "" {
			fields = append(fields, zap.String(pairs[i], value))
		}
	}
	return fields
}
