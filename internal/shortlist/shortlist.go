// Package shortlist narrows a ranking down for display and export. It never
// changes the ranking it was given.
package shortlist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/cv-ranker/internal/ranking"
)

// Filter represents a single shortlisting step.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *ranking.Ranking) (*ranking.Ranking, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the settings consumed by the steps.
type Config struct {
	MinimumScore int    `mapstructure:"minimum-score"`
	Top          int    `mapstructure:"top"`
	ExcludeFile  string `mapstructure:"exclude-file"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Default returns the steps in the order they are applied.
func Default() []Filter {
	return []Filter{
		NewMinimumScore(),
		NewExcludeFile(),
		NewTop(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and applies the enabled steps to a copy of r.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *ranking.Ranking) (*ranking.Ranking, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	shortlisted := r.Clone()
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("shortlist step disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, shortlisted)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Debug("shortlist step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		shortlisted = next
	}

	return shortlisted, nil
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
