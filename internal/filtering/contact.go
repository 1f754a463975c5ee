package filtering

import (
	"context"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/hiring"
)

const (
	reasonMissingContact = "missing name or email"
	reasonInvalidEmail   = "invalid email address"
)

type contactFilter struct {
	disabled bool
	reason   string
}

// NewContact creates a filter that removes candidates without a name or a usable email.
func NewContact() Filter {
	return &contactFilter{}
}

func (f *contactFilter) Name() string { return "contact" }

func (f *contactFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *contactFilter) IsEnabled() bool { return !f.disabled }

func (f *contactFilter) Validate(*Config) error { return nil }

func (f *contactFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(f.Name(), func(candidate hiring.Candidate) string {
		name := strings.TrimSpace(candidate.Name)
		email := strings.TrimSpace(candidate.Email)
		if name == "" || email == "" {
			return reasonMissingContact
		}
		if !validEmail(email) {
			return reasonInvalidEmail
		}
		return ""
	})

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Warn("excluding candidates without usable contact details",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *contactFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

// validEmail accepts a bare address with a dotted domain.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
