package ai

import (
	"context"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
)

// MatchAssessment is the verdict of matching an extracted profile against a job.
type MatchAssessment struct {
	Fit           bool     `json:"fit" yaml:"fit"`
	Score         int      `json:"score" yaml:"score"`
	Reason        string   `json:"reason" yaml:"reason"`
	MissingSkills []string `json:"missingSkills" yaml:"missingSkills"`
	Raw           string   `json:"-" yaml:"-"`
}

// Job describes the position a profile is matched against.
type Job struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description"`
}

type Matcher interface {
	Evaluate(ctx context.Context, profile *cvanalysis.Profile, job *Job) (*MatchAssessment, error)
}
