package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/keywords"
)

const (
	UnknownPosition      = "Unknown Position"
	NotSpecified         = "Not specified"
	DefaultRequirement   = "Experience relevant to the position"
	SummaryUnavailable   = "Position description unavailable"
	maxSummaryRunes      = 150
	sectionLines         = 10
	minSectionLineLength = 16
	maxSectionLineLength = 199
)

var (
	positionPattern = regexp.MustCompile(`(?i)(?:position|job title|role)\s*(?::|is|as)\s*(?:a|an)?\s*([A-Za-z\s]+(?:Developer|Engineer|Designer|Manager|Consultant|Specialist|Analyst|Director|Lead|Assistant))`)
	sectionPattern  = regexp.MustCompile(`(?i)requirements|qualifications`)
)

var commonTitles = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"Frontend Developer", "Backend Developer", "Full-Stack Developer",
	"DevOps Engineer", "UX Designer", "Project Manager", "QA Engineer",
}

// FallbackJobDescription builds a job description from text without the AI backend.
func FallbackJobDescription(text string) hiring.JobDescription {
	position := fallbackPosition(text)

	requirements := sectionRequirements(text)
	if len(requirements) == 0 {
		requirements = keywords.Requirements(text)
	}
	if len(requirements) == 0 {
		requirements = []string{DefaultRequirement}
	}

	return hiring.JobDescription{
		Position:         position,
		Requirements:     hiring.Truncate(requirements, hiring.MaxRequirements),
		PreferredSkills:  []string{},
		ExperienceLevel:  NotSpecified,
		Responsibilities: []string{"Responsibilities related to " + position},
		CompanyInfo:      NotSpecified,
		Summary:          fallbackSummary(text),
		Source:           hiring.SourceHeuristic,
	}
}

func fallbackPosition(text string) string {
	if match := positionPattern.FindStringSubmatch(text); match != nil {
		if position := strings.TrimSpace(match[1]); position != "" {
			return position
		}
	}

	lower := strings.ToLower(text)
	for _, title := range commonTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return title
		}
	}

	return UnknownPosition
}

// sectionRequirements reads the first lines between the first requirements or
// qualifications header and the next one. Bullet lines and lines of a plausible length count.
func sectionRequirements(text string) []string {
	headers := sectionPattern.FindAllStringIndex(text, 2)
	if len(headers) == 0 {
		return nil
	}

	section := text[headers[0][1]:]
	if len(headers) > 1 {
		section = text[headers[0][1]:headers[1][0]]
	}

	lines := strings.SplitN(section, "\n", sectionLines+1)
	if len(lines) > sectionLines {
		lines = lines[:sectionLines]
	}

	var requirements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			if item := strings.Trim(line, "•-* "); item != "" {
				requirements = append(requirements, item)
			}
			continue
		}

		if n := len([]rune(line)); n >= minSectionLineLength && n <= maxSectionLineLength {
			requirements = append(requirements, line)
		}
	}
	return requirements
}

func fallbackSummary(text string) string {
	paragraph, _, _ := strings.Cut(strings.TrimSpace(text), "\n\n")
	paragraph = strings.ReplaceAll(paragraph, "\n", " ")
	if paragraph == "" {
		return SummaryUnavailable
	}

	if runes := []rune(paragraph); len(runes) > maxSummaryRunes {
		return string(runes[:maxSummaryRunes-3]) + "..."
	}
	return paragraph
}

// Fallback interview questions.
var genericQuestions = []string{
	"Tell me about your experience relevant to this position.",
	"What are your greatest strengths?",
	"What challenges have you faced in previous roles?",
	"How do you handle deadlines and pressure?",
	"What are your career goals?",
}

const maxRequirementQuestions = 3

// FallbackQuestions builds a deterministic question set: five generic questions, up to three
// requirement questions and one question each for the first strength and weakness.
func FallbackQuestions(jd hiring.JobDescription, candidate hiring.Candidate) []string {
	questions := make([]string, 0, hiring.MaxQuestions)
	questions = append(questions, genericQuestions...)

	for _, req := range hiring.Truncate(jd.Requirements, maxRequirementQuestions) {
		questions = append(questions, fmt.Sprintf("Can you describe your experience with %s?", req))
	}

	if len(candidate.Strengths) > 0 {
		questions = append(questions, fmt.Sprintf("You mentioned %s. Can you provide an example of how you've applied this in a previous role?", candidate.Strengths[0]))
	}

	if len(candidate.Weaknesses) > 0 {
		questions = append(questions, fmt.Sprintf("How do you plan to develop your skills in %s?", candidate.Weaknesses[0]))
	}

	return questions
}
