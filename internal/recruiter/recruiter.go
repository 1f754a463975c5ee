// Package recruiter runs the hiring workflow: documents in, structured analyses and
// interview invitations out.
package recruiter

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/document"
	"github.com/spigell/autohire/internal/facts"
	"github.com/spigell/autohire/internal/filtering"
	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/keywords"
	"github.com/spigell/autohire/internal/mailer"
)

const (
	// MinTextLength is the shortest extracted text accepted for analysis.
	MinTextLength = 50

	reportKeywords   = 10
	reportKeyPhrases = 10
	digestSentences  = 3
)

// ErrTextTooShort is returned when a document has too little readable text.
var ErrTextTooShort = errors.New("extracted text is too short or empty")

// Analyzer is the structured analysis backend.
type Analyzer interface {
	AnalyzeJobDescription(ctx context.Context, text string) hiring.JobDescription
	AnalyzeCV(ctx context.Context, cvText string, jd hiring.JobDescription) hiring.MatchResult
	GenerateInterviewQuestions(ctx context.Context, jd hiring.JobDescription, candidate hiring.Candidate) []string
}

// Inviter delivers interview invitations.
type Inviter interface {
	SendInvitation(inv mailer.Invitation) mailer.Result
}

type Service struct {
	analyzer  Analyzer
	inviter   Inviter
	filterCfg *filtering.Config
	filters   func() []filtering.Filter
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option customises a Service.
type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithFilterConfig sets the screening configuration used before scheduling.
func WithFilterConfig(cfg *filtering.Config) Option {
	return func(s *Service) { s.filterCfg = cfg }
}

// WithClock overrides the time source used to normalise interview dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(analyzer Analyzer, inviter Inviter, opts ...Option) *Service {
	s := &Service{
		analyzer: analyzer,
		inviter:  inviter,
		filters:  filtering.Default,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// JobDescriptionReport is the analysed job description plus its dominant keywords.
type JobDescriptionReport struct {
	hiring.JobDescription
	Keywords []string `json:"keywords"`
}

// CVReport combines the extracted candidate facts with the match against a job description.
type CVReport struct {
	hiring.CandidateProfile
	Score             int           `json:"score"`
	Strengths         []string      `json:"strengths"`
	Weaknesses        []string      `json:"weaknesses"`
	Summary           string        `json:"summary"`
	Source            hiring.Source `json:"source"`
	KeywordSimilarity float64       `json:"keyword_similarity"`
	KeyPhrases        []string      `json:"key_phrases"`
	Digest            string        `json:"digest"`
}

// Candidate converts the report into the scheduling input.
func (r CVReport) Candidate() hiring.Candidate {
	score := r.Score
	return hiring.Candidate{
		Name:       r.Name,
		Email:      r.Email,
		Skills:     r.Skills,
		Strengths:  r.Strengths,
		Weaknesses: r.Weaknesses,
		Score:      &score,
	}
}

// ExtractText returns the document text, rejecting documents with too little of it.
func (s *Service) ExtractText(data []byte, filename string) (string, error) {
	text, err := document.Extract(data, filename)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return "", ErrTextTooShort
	}
	return text, nil
}

// ProcessJobDescription extracts and analyses a job description document.
func (s *Service) ProcessJobDescription(ctx context.Context, data []byte, filename string) (JobDescriptionReport, error) {
	log := s.logger.With(zap.String("file", filename))

	text, err := s.ExtractText(data, filename)
	if err != nil {
		log.Warn("job description rejected", zap.Error(err))
		return JobDescriptionReport{}, err
	}

	jd := s.analyzer.AnalyzeJobDescription(ctx, text)
	log.Info("job description processed",
		zap.String("position", jd.Position),
		zap.String("source", string(jd.Source)),
		zap.Int("requirements", len(jd.Requirements)),
	)

	return JobDescriptionReport{
		JobDescription: jd,
		Keywords:       nonNil(keywords.Keywords(text, reportKeywords)),
	}, nil
}

// ProcessCV extracts a CV document and matches it against jd.
func (s *Service) ProcessCV(ctx context.Context, data []byte, filename string, jd hiring.JobDescription) (CVReport, error) {
	log := s.logger.With(zap.String("file", filename))

	text, err := s.ExtractText(data, filename)
	if err != nil {
		log.Warn("cv rejected", zap.Error(err))
		return CVReport{}, err
	}

	return s.AnalyzeCVText(ctx, text, jd), nil
}

// AnalyzeCVText builds the CV report from already extracted text.
func (s *Service) AnalyzeCVText(ctx context.Context, text string, jd hiring.JobDescription) CVReport {
	profile := facts.Profile(text)
	match := s.analyzer.AnalyzeCV(ctx, text, jd)

	report := CVReport{
		CandidateProfile:  profile,
		Score:             match.MatchScore,
		Strengths:         nonNil(match.Strengths),
		Weaknesses:        nonNil(match.Weaknesses),
		Summary:           match.Summary,
		Source:            match.Source,
		KeywordSimilarity: keywords.Similarity(jobText(jd), text),
		KeyPhrases:        nonNil(keywords.KeyPhrases(text, reportKeyPhrases)),
		Digest:            keywords.Summarize(text, digestSentences),
	}

	s.logger.Info("cv processed",
		zap.String("candidate", profile.Name),
		zap.Int("score", report.Score),
		zap.String("source", string(report.Source)),
		zap.Float64("keyword_similarity", report.KeywordSimilarity),
	)
	return report
}

// jobText flattens a structured job description for keyword comparison.
func jobText(jd hiring.JobDescription) string {
	parts := []string{jd.Position, jd.ExperienceLevel, jd.Summary, jd.CompanyInfo}
	parts = append(parts, jd.Requirements...)
	parts = append(parts, jd.PreferredSkills...)
	parts = append(parts, jd.Responsibilities...)
	return strings.Join(parts, "\n")
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
