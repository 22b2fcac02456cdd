package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/store"
)

// Filter represents a single filtering step applied to stored analyses.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, records []*store.Record) ([]*store.Record, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the criteria consumed by the filters. Zero values disable a criterion.
type Config struct {
	Expertise string
	MinYears  int
	Skill     string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Default returns the standard filter chain in execution order.
func Default() []Filter {
	return []Filter{
		NewExpertise(),
		NewMinExperience(),
		NewSkill(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
// It fails when no filter has that name.
func DisableByName(steps []Filter, name, reason string) error {
	found := false
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("unknown filter %q", name)
	}
	return nil
}

// Run executes the supplied filters sequentially and returns the remaining records.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, records []*store.Record) ([]*store.Record, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, records)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		records = next
	}

	return records, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func keep(records []*store.Record, match func(*store.Record) bool) ([]*store.Record, Step) {
	kept := make([]*store.Record, 0, len(records))
	for _, rec := range records {
		if match(rec) {
			kept = append(kept, rec)
		}
	}
	return kept, Step{Initial: len(records), Dropped: len(records) - len(kept), Left: len(kept)}
}
