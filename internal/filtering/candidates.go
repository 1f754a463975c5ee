package filtering

import (
	"strings"

	"github.com/spigell/autohire/internal/hiring"
)

// Rejection records why a candidate left the list.
type Rejection struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Filter string `json:"filter"`
	Reason string `json:"reason"`
}

// Candidates is the list being screened together with everyone dropped so far.
type Candidates struct {
	Items    []hiring.Candidate
	Rejected []Rejection
}

// NewCandidates copies items so screening never reorders the caller's slice.
func NewCandidates(items []hiring.Candidate) *Candidates {
	return &Candidates{Items: append([]hiring.Candidate(nil), items...)}
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

// Emails returns the addresses of the remaining candidates.
func (c *Candidates) Emails() []string {
	emails := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		emails = append(emails, candidate.Email)
	}
	return emails
}

// Exclude drops every candidate for which reject returns a non-empty reason and returns the
// emails of the dropped ones. Order of the remaining candidates is kept.
func (c *Candidates) Exclude(filter string, reject func(hiring.Candidate) string) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		reason := reject(candidate)
		if reason == "" {
			kept = append(kept, candidate)
			continue
		}
		excluded = append(excluded, candidate.Email)
		c.Rejected = append(c.Rejected, Rejection{
			Name:   candidate.Name,
			Email:  candidate.Email,
			Filter: filter,
			Reason: reason,
		})
	}
	c.Items = kept
	return excluded
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
