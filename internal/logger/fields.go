package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldRunID correlates all entries of a single cli invocation.
	FieldRunID = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AIFields describes the AI provider and model. Empty values are dropped.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// ProfileFields summarizes an extracted profile without leaking contact details.
func ProfileFields(p *cvanalysis.Profile) []zap.Field {
	if p == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: "full_name", Value: p.FullName},
		StringField{Key: "expertise", Value: p.Expertise},
	)

	return append(fields,
		zap.Int("experience_years", p.ExperienceYears),
		zap.Strings("skills", p.Skills),
		zap.Strings("job_titles", p.JobTitles),
		zap.Bool("has_email", p.Email != nil),
		zap.Bool("has_phone", p.Phone != nil),
	)
}
