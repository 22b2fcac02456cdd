package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
	"github.com/spigell/cv-analyzer/internal/store"
)

type expertiseFilter struct {
	disabled  bool
	reason    string
	expertise string
}

// NewExpertise creates a filter keeping analyses of a single expertise category.
func NewExpertise() Filter {
	return &expertiseFilter{}
}

func (f *expertiseFilter) Name() string { return "expertise" }

func (f *expertiseFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *expertiseFilter) IsEnabled() bool { return !f.disabled }

func (f *expertiseFilter) Validate(cfg *Config) error {
	f.expertise = ""
	if cfg == nil {
		return nil
	}

	want := strings.TrimSpace(cfg.Expertise)
	if want == "" {
		return nil
	}

	known := append(cvanalysis.Categories(), cvanalysis.GeneralExpertise)
	for _, name := range known {
		if strings.EqualFold(name, want) {
			f.expertise = name
			return nil
		}
	}

	return fmt.Errorf("unknown expertise %q, expected one of: %s", want, strings.Join(known, ", "))
}

func (f *expertiseFilter) Apply(_ context.Context, _ Deps, records []*store.Record) ([]*store.Record, Step, error) {
	if f.expertise == "" {
		return records, Step{Initial: len(records), Left: len(records)}, nil
	}

	kept, step := keep(records, func(r *store.Record) bool {
		return strings.EqualFold(r.Expertise, f.expertise)
	})
	return kept, step, nil
}

func (f *expertiseFilter) Status() Status {
	details := map[string]string{}
	if f.expertise != "" {
		details["expertise"] = f.expertise
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type minExperienceFilter struct {
	disabled bool
	reason   string
	years    int
}

// NewMinExperience creates a filter dropping analyses below a number of experience years.
func NewMinExperience() Filter {
	return &minExperienceFilter{}
}

func (f *minExperienceFilter) Name() string { return "min_experience" }

func (f *minExperienceFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minExperienceFilter) IsEnabled() bool { return !f.disabled }

func (f *minExperienceFilter) Validate(cfg *Config) error {
	f.years = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinYears < 0 {
		return fmt.Errorf("minimum experience must not be negative, got %d", cfg.MinYears)
	}
	f.years = cfg.MinYears
	return nil
}

func (f *minExperienceFilter) Apply(_ context.Context, _ Deps, records []*store.Record) ([]*store.Record, Step, error) {
	if f.years == 0 {
		return records, Step{Initial: len(records), Left: len(records)}, nil
	}

	kept, step := keep(records, func(r *store.Record) bool {
		return r.ExperienceYears >= f.years
	})
	return kept, step, nil
}

func (f *minExperienceFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_years": strconv.Itoa(f.years)},
	}
}

type skillFilter struct {
	disabled bool
	reason   string
	skill    string
}

// NewSkill creates a filter keeping analyses that list a skill.
func NewSkill() Filter {
	return &skillFilter{}
}

func (f *skillFilter) Name() string { return "skill" }

func (f *skillFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *skillFilter) IsEnabled() bool { return !f.disabled }

func (f *skillFilter) Validate(cfg *Config) error {
	f.skill = ""
	if cfg != nil {
		f.skill = strings.TrimSpace(cfg.Skill)
	}
	return nil
}

func (f *skillFilter) Apply(_ context.Context, _ Deps, records []*store.Record) ([]*store.Record, Step, error) {
	if f.skill == "" {
		return records, Step{Initial: len(records), Left: len(records)}, nil
	}

	kept, step := keep(records, func(r *store.Record) bool {
		for _, s := range r.Skills {
			if strings.EqualFold(s, f.skill) {
				return true
			}
		}
		return false
	})
	return kept, step, nil
}

func (f *skillFilter) Status() Status {
	details := map[string]string{}
	if f.skill != "" {
		details["skill"] = f.skill
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
