package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxRequirements       = 8
	maxKeywordRequirement = 5
	requirementWindow     = 1000
	minBulletLength       = 11
	minSentenceLength     = 30
	maxSentenceLength     = 150
)

var sectionHeaders = []string{
	"requirements",
	"qualifications",
	"what you'll need",
	"what we're looking for",
	"required skills",
}

var requirementTerms = []string{
	"experience", "knowledge", "proficiency", "expertise", "familiarity",
	"skill", "ability", "competency", "understanding", "proficient",
}

var (
	bulletLine   = regexp.MustCompile(`^(?:[•\-*]|\d+\.)`)
	bulletPrefix = regexp.MustCompile(`^[\s•\-*\d.]+`)
)

// Requirements scrapes up to eight requirement phrases from a job posting.
//
// The section following the first known header is searched for bullet or numbered lines.
// Without bullets, sentences of a plausible length that mention a skill term are used.
// As a last resort the top keywords are turned into "Proficiency in <keyword>" entries.
func Requirements(text string) []string {
	if reqs := bulletRequirements(text); len(reqs) > 0 {
		return reqs
	}

	var reqs []string
	for _, sentence := range Sentences(text) {
		n := len([]rune(sentence))
		if n >= minSentenceLength && n <= maxSentenceLength && containsAny(strings.ToLower(sentence), requirementTerms) {
			reqs = append(reqs, sentence)
		}
		if len(reqs) >= maxRequirements {
			break
		}
	}
	if len(reqs) > 0 {
		return reqs
	}

	for _, keyword := range Keywords(text, 10) {
		reqs = append(reqs, "Proficiency in "+keyword)
		if len(reqs) >= maxKeywordRequirement {
			break
		}
	}
	return reqs
}

func bulletRequirements(text string) []string {
	section, ok := requirementSection(text)
	if !ok {
		return nil
	}

	var reqs []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || containsAny(strings.ToLower(line), sectionHeaders) {
			continue
		}

		if bulletLine.MatchString(line) {
			clean := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
			if len([]rune(clean)) >= minBulletLength {
				reqs = append(reqs, clean)
			}
		}

		if len(reqs) >= maxRequirements {
			break
		}
	}
	return reqs
}

// requirementSection returns up to requirementWindow runes starting at the first header.
// Headers are tried in declaration order.
func requirementSection(text string) (string, bool) {
	runes := []rune(text)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	for _, header := range sectionHeaders {
		idx := indexRunes(lower, []rune(header))
		if idx < 0 {
			continue
		}
		end := min(idx+requirementWindow, len(runes))
		return string(runes[idx:end]), true
	}
	return "", false
}

func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
