// Package facts recovers contact details, education, experience and skills from plain CV text
// with pattern based heuristics. Every function is pure and never fails; missing facts are
// reported as absent or as a fixed sentinel.
package facts

import (
	"regexp"
	"strings"

	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/keywords"
)

// DefaultNameLines is how many leading non-empty lines Name inspects by default.
const DefaultNameLines = 10

const (
	NoEducation          = "No education information found"
	RelevantExperience   = "Has relevant experience"
	ExperienceNotDefined = "Experience not specified"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	namePattern  = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+){0,2}$`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s*(?:of)?\s*experience`),
		regexp.MustCompile(`(?i)experience\s*(?:of|:)?\s*(\d+)\s*\+?\s*years?`),
		regexp.MustCompile(`(?i)worked\s*(?:for)?\s*(\d+)\s*\+?\s*years?`),
	}
)

var (
	educationKeywords = []string{
		"Ph.D.", "PhD", "Doctorate",
		"Master", "MS ", "M.S.", "MSc", "M.Sc", "MA ", "M.A.",
		"Bachelor", "BS ", "B.S.", "BA ", "B.A.", "BSc", "B.Sc",
		"Engineering", "Computer Science", "Information Technology",
		"University", "College",
	}
	doctorateKeywords = []string{"Ph.D.", "PhD", "Doctorate"}
	masterKeywords    = []string{"Master", "MS ", "M.S.", "MSc", "M.Sc"}
)

var nameLabels = map[string]struct{}{"name": {}, "full name": {}}

// Email returns the first email address found in text.
func Email(text string) (string, bool) {
	match := emailPattern.FindString(text)
	return match, match != ""
}

// Name looks for a person's name among the first maxLines non-empty lines. A line made of one
// to three capitalised words wins; otherwise the value of a "Name:" or "Full Name:" label is used.
func Name(text string, maxLines int) (string, bool) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if len(lines) >= maxLines {
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	for _, line := range lines {
		if namePattern.MatchString(line) {
			return line, true
		}
	}

	for _, line := range lines {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if _, known := nameLabels[strings.ToLower(strings.TrimSpace(label))]; !known {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, true
		}
	}

	return "", false
}

// Education returns the most advanced education sentence: doctorate first, then master's,
// then the first sentence mentioning any education keyword.
func Education(text string) string {
	var candidates []string
	for _, sentence := range keywords.Sentences(text) {
		if mentionsAny(sentence, educationKeywords) {
			candidates = append(candidates, sentence)
		}
	}

	if len(candidates) == 0 {
		return NoEducation
	}

	for _, level := range [][]string{doctorateKeywords, masterKeywords} {
		for _, keyword := range level {
			for _, sentence := range candidates {
				if mentionsAny(sentence, []string{keyword}) {
					return strings.TrimSpace(sentence)
				}
			}
		}
	}

	return strings.TrimSpace(candidates[0])
}

// Experience reports the first "N years" figure found, formatted as "N+ years".
func Experience(text string) string {
	for _, pattern := range experiencePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1] + "+ years"
		}
	}

	if strings.Contains(strings.ToLower(text), "experience") {
		return RelevantExperience
	}

	return ExperienceNotDefined
}

// Profile extracts every fact from a CV.
func Profile(text string) hiring.CandidateProfile {
	profile := hiring.CandidateProfile{
		Education:  Education(text),
		Experience: Experience(text),
		Skills:     Skills(text),
	}
	profile.Name, _ = Name(text, DefaultNameLines)
	profile.Email, _ = Email(text)
	return profile
}

// mentionsAny is a case-insensitive substring test. Keywords such as "MS " rely on the
// trailing space to avoid matching inside words.
func mentionsAny(sentence string, keywords []string) bool {
	lower := strings.ToLower(sentence)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
