package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/board"
)

// fieldFilter drops jobs whose field matches one of the configured values.
type fieldFilter struct {
	name     string
	field    string
	values   func(cfg *Config) []string
	targets  []string
	disabled bool
	reason   string
}

// NewLocations creates a filter that removes jobs in the configured locations.
func NewLocations() Filter {
	return &fieldFilter{
		name:   "locations",
		field:  board.JobLocationField,
		values: func(cfg *Config) []string { return cfg.Locations },
	}
}

// NewTitles creates a filter that removes jobs with the configured titles.
func NewTitles() Filter {
	return &fieldFilter{
		name:   "titles",
		field:  board.JobTitleField,
		values: func(cfg *Config) []string { return cfg.Titles },
	}
}

func (f *fieldFilter) Name() string { return f.name }

func (f *fieldFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *fieldFilter) IsEnabled() bool { return !f.disabled }

func (f *fieldFilter) Validate(cfg *Config) error {
	f.targets = nil
	if cfg == nil {
		return nil
	}
	for _, value := range f.values(cfg) {
		if value = strings.TrimSpace(value); value != "" {
			f.targets = append(f.targets, value)
		}
	}
	return nil
}

func (f *fieldFilter) Apply(_ context.Context, deps Deps, jobs *board.Jobs) (*board.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.targets) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(f.field, f.targets)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by "+f.name,
			zap.Strings("excluded_"+f.name, f.targets),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *fieldFilter) Status() Status {
	details := map[string]string{}
	if len(f.targets) > 0 {
		details[f.name] = strings.Join(f.targets, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
