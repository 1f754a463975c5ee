// Package analyzer turns job descriptions and CVs into structured results. Every operation
// first tries the AI backend under the retry policy and falls back to deterministic
// heuristics, so callers always receive a complete result.
package analyzer

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/facts"
	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/logger"
	"github.com/spigell/autohire/internal/utils"
)

const (
	opJobDescription = "analyze_job_description"
	opCV             = "analyze_cv"
	opQuestions      = "generate_interview_questions"

	defaultMaxLogLength = 200
)

// UnknownCandidate names candidates whose CV has no recognisable name.
const UnknownCandidate = "Unknown Candidate"

type Analyzer struct {
	generator    ai.Generator
	availability *ai.Availability
	policy       ai.RetryPolicy
	logger       *zap.Logger
	maxLogLen    int
}

// Option customises an Analyzer.
type Option func(*Analyzer)

func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

func WithMaxLogLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxLogLen = n
		}
	}
}

// New builds an Analyzer. A nil generator means the AI backend is not configured and every
// call takes the heuristic path. A nil availability starts enabled when a generator is set.
func New(generator ai.Generator, availability *ai.Availability, policy ai.RetryPolicy, opts ...Option) *Analyzer {
	if availability == nil {
		availability = ai.NewAvailability(generator != nil, "ai backend is not configured")
	}

	a := &Analyzer{
		generator:    generator,
		availability: availability,
		policy:       policy,
		maxLogLen:    defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// Available reports whether the next call may reach the AI backend.
func (a *Analyzer) Available() bool {
	return a.generator != nil && a.availability.Available()
}

// AnalyzeJobDescription extracts the structured job description.
func (a *Analyzer) AnalyzeJobDescription(ctx context.Context, text string) hiring.JobDescription {
	var result hiring.JobDescription

	ok := a.guarded(ctx, opJobDescription, ai.ShapeJobDescription, jobDescriptionPrompt(text), func(raw string) error {
		jd, err := decodeJobDescription(raw)
		if err != nil {
			return err
		}
		result = jd
		return nil
	})
	if ok {
		return result
	}

	return FallbackJobDescription(text)
}

// AnalyzeCV scores a CV against a job description.
func (a *Analyzer) AnalyzeCV(ctx context.Context, cvText string, jd hiring.JobDescription) hiring.MatchResult {
	var result hiring.MatchResult

	ok := a.guarded(ctx, opCV, ai.ShapeMatch, matchPrompt(cvText, jd), func(raw string) error {
		match, err := decodeMatch(raw)
		if err != nil {
			return err
		}
		result = match
		return nil
	})
	if ok {
		return result
	}

	name, found := facts.Name(cvText, facts.DefaultNameLines)
	if !found {
		name = UnknownCandidate
	}
	return Match(name, facts.Skills(cvText), jd)
}

// GenerateInterviewQuestions returns between five and ten questions for candidate.
func (a *Analyzer) GenerateInterviewQuestions(ctx context.Context, jd hiring.JobDescription, candidate hiring.Candidate) []string {
	var result []string

	ok := a.guarded(ctx, opQuestions, ai.ShapeQuestions, questionsPrompt(jd, candidate), func(raw string) error {
		questions, err := decodeQuestions(raw)
		if err != nil {
			return err
		}
		result = questions
		return nil
	})
	if ok {
		return result
	}

	return FallbackQuestions(jd, candidate)
}

// guarded runs one AI operation under the retry policy. parse is called with every raw
// response and must return an *ai.MalformedResponseError when the payload is unusable.
// The return value reports whether parse accepted a response.
func (a *Analyzer) guarded(ctx context.Context, operation string, shape ai.Shape, prompt string, parse func(raw string) error) bool {
	log := logger.WithFields(a.logger, zap.String(logger.FieldOperation, operation))

	if !a.Available() {
		reason := "ai backend is not configured"
		if a.generator != nil {
			reason = a.availability.Reason()
		}
		log.Info("ai backend unavailable; using heuristic fallback",
			logger.Path(hiring.SourceHeuristic),
			zap.String("reason", reason),
		)
		return false
	}

	outcome := a.policy.Run(ctx, a.availability, func(ctx context.Context, model string) error {
		attemptLog := logger.WithAI(log, a.generator.Provider(), model)
		attemptLog.Debug("ai request",
			zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
			zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
		)

		raw, err := a.generator.Generate(ctx, model, prompt, shape)
		if err != nil {
			attemptLog.Warn("ai request failed", zap.Stringer("decision", ai.Classify(err)), zap.Error(err))
			return err
		}

		if err := parse(raw); err != nil {
			attemptLog.Warn("ai response rejected",
				zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
				zap.Error(err),
			)
			return err
		}
		return nil
	})

	provider := a.generator.Provider()
	if outcome.Structured() {
		logger.WithAI(log, provider, outcome.Model).Info("ai analysis completed",
			logger.Path(hiring.SourceAI),
			zap.Int("attempts", outcome.Attempts),
		)
		return true
	}

	if outcome.Decision == ai.Disable {
		log.Error("ai backend disabled after authentication failure", zap.Error(outcome.Err))
	}

	logger.WithAI(log, provider, outcome.Model).Warn("ai analysis failed; using heuristic fallback",
		logger.Path(hiring.SourceHeuristic),
		zap.Int("attempts", outcome.Attempts),
		zap.Stringer("decision", outcome.Decision),
		zap.Error(outcome.Err),
	)
	return false
}
