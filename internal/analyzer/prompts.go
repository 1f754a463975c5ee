package analyzer

import (
	_ "embed"
	"strings"

	"github.com/spigell/autohire/internal/hiring"
)

var (
	//go:embed prompts/job_description.md
	jobDescriptionTemplate string

	//go:embed prompts/match.md
	matchTemplate string

	//go:embed prompts/questions.md
	questionsTemplate string
)

const noneListed = "- none listed"

func jobDescriptionPrompt(text string) string {
	return strings.ReplaceAll(jobDescriptionTemplate, "{{JOB_TEXT}}", text)
}

func matchPrompt(cvText string, jd hiring.JobDescription) string {
	return strings.NewReplacer(
		"{{POSITION}}", positionOr(jd.Position, "Not specified"),
		"{{CV_TEXT}}", cvText,
		"{{REQUIREMENTS}}", bulletsOrNone(jd.Requirements),
		"{{RESPONSIBILITIES}}", bulletsOrNone(jd.Responsibilities),
	).Replace(matchTemplate)
}

func questionsPrompt(jd hiring.JobDescription, candidate hiring.Candidate) string {
	return strings.NewReplacer(
		"{{POSITION}}", positionOr(jd.Position, "the position"),
		"{{REQUIREMENTS}}", bulletsOrNone(jd.Requirements),
		"{{STRENGTHS}}", bulletsOrNone(candidate.Strengths),
		"{{WEAKNESSES}}", bulletsOrNone(candidate.Weaknesses),
	).Replace(questionsTemplate)
}

func positionOr(position, fallback string) string {
	if position = strings.TrimSpace(position); position != "" {
		return position
	}
	return fallback
}

func bulletsOrNone(items []string) string {
	if len(items) == 0 {
		return noneListed
	}
	return hiring.Bullets(items)
}
