package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/hiring"
)

type minScoreFilter struct {
	disabled bool
	reason   string
	min      *int
}

// NewMinScore creates a filter that removes candidates scored below the configured minimum.
// Candidates without a score are kept.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.min = nil
	if cfg == nil || cfg.MinScore == nil {
		return nil
	}
	value := *cfg.MinScore
	if value < hiring.MinScore || value > hiring.MaxScore {
		return fmt.Errorf("minimum score must be between %d and %d, got %d", hiring.MinScore, hiring.MaxScore, value)
	}
	f.min = &value
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.min == nil {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	minimum := *f.min
	excluded := c.Exclude(f.Name(), func(candidate hiring.Candidate) string {
		if candidate.Score == nil || *candidate.Score >= minimum {
			return ""
		}
		return fmt.Sprintf("score %d is below %d", *candidate.Score, minimum)
	})

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates by score",
			zap.Int("min_score", minimum),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	details := map[string]string{}
	if f.min != nil {
		details["min_score"] = strconv.Itoa(*f.min)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
