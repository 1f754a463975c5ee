package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/hiring"
)

const reasonDuplicate = "duplicate email"

type duplicatesFilter struct {
	disabled bool
	reason   string
}

// NewDuplicates creates a filter that keeps only the first candidate for every email.
// Emails are compared case-insensitively.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	seen := make(map[string]struct{}, initial)
	excluded := c.Exclude(f.Name(), func(candidate hiring.Candidate) string {
		key := normalizeEmail(candidate.Email)
		if _, ok := seen[key]; ok {
			return reasonDuplicate
		}
		seen[key] = struct{}{}
		return ""
	})

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding duplicated candidates",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
