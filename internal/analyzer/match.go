package analyzer

import (
	"fmt"
	"strings"

	"github.com/spigell/autohire/internal/hiring"
)

const (
	matchWeight      = 80
	noRequirementsAt = 50
	bonusPerSkill    = 2
	maxBonus         = 20

	FallbackStrength = "Experience appears relevant to the position"
	FallbackWeakness = "Unable to identify specific gaps without AI analysis"
)

// Match scores skills against the job requirements without the AI backend.
//
// A requirement is met by the first skill that contains it or is contained by it, ignoring
// case. Met requirements give up to 80 points (50 when there is nothing to compare against)
// and every skill outside the matched set adds 2 points, at most 20. The score is clamped
// into [0, 100].
func Match(name string, skills []string, jd hiring.JobDescription) hiring.MatchResult {
	var (
		matched  []string
		seen     = make(map[string]struct{})
		missing  []string
		metCount int
	)

	for _, req := range jd.Requirements {
		skill, ok := matchingSkill(req, skills)
		if !ok {
			missing = append(missing, req)
			continue
		}
		metCount++
		if _, dup := seen[skill]; !dup {
			seen[skill] = struct{}{}
			matched = append(matched, skill)
		}
	}

	score := noRequirementsAt
	if total := len(jd.Requirements); total > 0 {
		score = int(float64(metCount) / float64(total) * matchWeight)
	}
	if extra := len(skills) - len(matched); extra > 0 {
		score += min(extra*bonusPerSkill, maxBonus)
	}
	score = hiring.ClampScore(score)

	strengths := hiring.Truncate(matched, hiring.MaxStrengths)
	if len(strengths) == 0 {
		strengths = []string{FallbackStrength}
	}
	weaknesses := hiring.Truncate(missing, hiring.MaxWeaknesses)
	if len(weaknesses) == 0 {
		weaknesses = []string{FallbackWeakness}
	}

	return hiring.MatchResult{
		MatchScore: score,
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Summary:    fmt.Sprintf("Candidate %s has a match score of %d%% based on keyword analysis. Full AI analysis unavailable.", name, score),
		Source:     hiring.SourceHeuristic,
	}
}

func matchingSkill(requirement string, skills []string) (string, bool) {
	req := strings.ToLower(requirement)
	for _, skill := range skills {
		s := strings.ToLower(skill)
		if strings.Contains(req, s) || strings.Contains(s, req) {
			return skill, true
		}
	}
	return "", false
}
