package cvanalysis

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// Analyze extracts a Profile from raw CV text. It fails only when the text is
// empty or whitespace; every other input yields a profile, with missing
// fields left nil, empty or set to their sentinel values.
func Analyze(raw string) (*Profile, error) {
	text := trimSpace(raw)
	if text == "" {
		return nil, &InvalidInputError{Reason: "text is empty"}
	}

	skills := ExtractSkills(text)

	p := &Profile{
		FullName:        ExtractFullName(text),
		Email:           ExtractEmail(text),
		Phone:           ExtractPhone(text),
		Skills:          skills,
		Expertise:       InferExpertise(skills),
		JobTitles:       ExtractJobTitles(text),
		ExperienceYears: EstimateExperience(text),
		Education:       ExtractEducation(text),
	}
	p.Summary = GenerateSummary(p)

	return p, nil
}

// Analyzer runs Analyze and reports the outcome to a logger.
type Analyzer struct {
	logger *zap.Logger
}

func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

func (a *Analyzer) Analyze(raw string) (*Profile, error) {
	p, err := Analyze(raw)
	if err != nil {
		a.logger.Debug("cv analysis rejected", zap.Error(err))
		return nil, err
	}

	a.logger.Debug("cv analyzed",
		zap.Int("text_length", utf8.RuneCountInString(raw)),
		zap.String("expertise", p.Expertise),
		zap.Int("skills", len(p.Skills)),
		zap.Int("job_titles", len(p.JobTitles)),
		zap.Int("experience_years", p.ExperienceYears),
		zap.Int("education", len(p.Education)),
	)

	return p, nil
}
