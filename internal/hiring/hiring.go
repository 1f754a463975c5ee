package hiring

import "strings"

// Source tells which path produced an analysis result.
type Source string

const (
	SourceAI        Source = "ai"
	SourceHeuristic Source = "heuristic"
)

const (
	MaxRequirements     = 8
	MaxResponsibilities = 8
	MaxStrengths        = 5
	MaxWeaknesses       = 3
	MinQuestions        = 5
	MaxQuestions        = 10
	MinScore            = 0
	MaxScore            = 100
)

// JobDescription is the structured view of a job posting.
type JobDescription struct {
	Position         string   `json:"position" mapstructure:"position"`
	Requirements     []string `json:"requirements" mapstructure:"requirements"`
	PreferredSkills  []string `json:"preferred_skills" mapstructure:"preferred_skills"`
	ExperienceLevel  string   `json:"experience_level" mapstructure:"experience_level"`
	Responsibilities []string `json:"responsibilities" mapstructure:"responsibilities"`
	CompanyInfo      string   `json:"company_info" mapstructure:"company_info"`
	Summary          string   `json:"summary" mapstructure:"summary"`
	Source           Source   `json:"source,omitempty" mapstructure:"-"`
}

// CandidateProfile holds facts recovered from a CV. Name and Email are empty when absent.
type CandidateProfile struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

// MatchResult scores a candidate against a job description.
type MatchResult struct {
	MatchScore int      `json:"match_score" mapstructure:"match_score"`
	Strengths  []string `json:"strengths" mapstructure:"strengths"`
	Weaknesses []string `json:"weaknesses" mapstructure:"weaknesses"`
	Summary    string   `json:"summary" mapstructure:"summary"`
	Source     Source   `json:"source,omitempty" mapstructure:"-"`
}

// Candidate is the input used for interview scheduling and question generation.
type Candidate struct {
	Name       string   `json:"name" mapstructure:"name"`
	Email      string   `json:"email" mapstructure:"email"`
	Skills     []string `json:"skills,omitempty" mapstructure:"skills"`
	Strengths  []string `json:"strengths,omitempty" mapstructure:"strengths"`
	Weaknesses []string `json:"weaknesses,omitempty" mapstructure:"weaknesses"`
	Score      *int     `json:"score,omitempty" mapstructure:"score"`
}

// InterviewDetails describes when and how an interview happens.
type InterviewDetails struct {
	Date          string `json:"date" mapstructure:"date"`
	Time          string `json:"time" mapstructure:"time"`
	Mode          string `json:"mode" mapstructure:"mode"`
	MeetingLink   string `json:"meeting_link,omitempty" mapstructure:"meeting_link"`
	OfficeAddress string `json:"office_address,omitempty" mapstructure:"office_address"`
}

// ClampScore keeps a score inside [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Truncate returns at most n leading items of list.
func Truncate(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// Bullets renders items as "- item" lines.
func Bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
