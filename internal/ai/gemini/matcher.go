package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Matcher struct {
	generator contentGenerator
	minScore  int
	logger    *zap.Logger
	maxLogLen int
	schema    *jsonschema.Schema
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

const responseSchema = `{
	"type": "object",
	"required": ["fit", "score", "reason"],
	"properties": {
		"fit": {"type": "boolean"},
		"score": {"type": "integer", "minimum": 0, "maximum": 100},
		"reason": {"type": "string"},
		"missing_skills": {"type": "array", "items": {"type": "string"}}
	}
}`

type matchResponse struct {
	Fit           bool     `json:"fit"`
	Score         int      `json:"score"`
	Reason        string   `json:"reason"`
	MissingSkills []string `json:"missing_skills"`
}

func NewMatcher(generator contentGenerator, logger *zap.Logger, minScore, maxLogLength int) (*Matcher, error) {
	if generator == nil {
		return nil, errors.New("content generator is required")
	}
	if minScore < 0 || minScore > 100 {
		return nil, fmt.Errorf("minimum match score must be within 0..100, got %d", minScore)
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	return &Matcher{
		generator: generator,
		minScore:  minScore,
		logger:    logger,
		maxLogLen: maxLogLength,
		schema:    schema,
	}, nil
}

func (m *Matcher) Evaluate(ctx context.Context, profile *cvanalysis.Profile, job *ai.Job) (*ai.MatchAssessment, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	if job == nil || strings.TrimSpace(job.Description) == "" {
		return nil, errors.New("job description is required")
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON), string(jobJSON))

	m.logger.Debug("gemini generate content request",
		zap.String("job_title", job.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini generate content response",
		zap.String("job_title", job.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	assessment, err := m.parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if assessment.Fit && assessment.Score < m.minScore {
		m.logger.Debug("set fit to false by score threshold",
			zap.Int("score", assessment.Score),
			zap.Int("threshold", m.minScore),
		)
		assessment.Fit = false
	}

	assessment.Raw = raw
	return assessment, nil
}

func buildPrompt(profileJSON, jobJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nJob:\n{{JOB_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	return prompt
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("match.json", strings.NewReader(responseSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("match.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func (m *Matcher) parseResponse(raw string) (*ai.MatchAssessment, error) {
	cleaned := []byte(extractJSON(raw))

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(cleaned))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	if err := m.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("gemini response does not match schema: %w", err)
	}

	var resp matchResponse
	if err := json.Unmarshal(cleaned, &resp); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	missing := make([]string, 0, len(resp.MissingSkills))
	for _, skill := range resp.MissingSkills {
		if skill = strings.TrimSpace(skill); skill != "" {
			missing = append(missing, skill)
		}
	}

	return &ai.MatchAssessment{
		Fit:           resp.Fit,
		Score:         resp.Score,
		Reason:        strings.TrimSpace(resp.Reason),
		MissingSkills: missing,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
