package analyzer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/hiring"
)

type stubReply struct {
	text string
	err  error
}

type stubGenerator struct {
	mu      sync.Mutex
	replies map[string][]stubReply
	calls   []string
	prompts []string
}

func newStub() *stubGenerator {
	return &stubGenerator{replies: make(map[string][]stubReply)}
}

func (s *stubGenerator) reply(model, text string, err error) *stubGenerator {
	s.replies[model] = append(s.replies[model], stubReply{text: text, err: err})
	return s
}

func (s *stubGenerator) Generate(_ context.Context, model, prompt string, _ ai.Shape) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, model)
	s.prompts = append(s.prompts, prompt)

	queue := s.replies[model]
	if len(queue) == 0 {
		return "", errors.New("unexpected call")
	}
	s.replies[model] = queue[1:]
	return queue[0].text, queue[0].err
}

func (s *stubGenerator) Provider() string { return "stub" }

func testPolicy() ai.RetryPolicy {
	return ai.RetryPolicy{
		Models:  []string{"primary", "fallback"},
		Backoff: time.Second,
		Wait:    func(context.Context, time.Duration) error { return nil },
	}
}

func rateLimited() error {
	return &ai.ServiceError{Kind: ai.KindRateLimit, Err: errors.New("quota exceeded")}
}

func authFailed() error {
	return &ai.ServiceError{Kind: ai.KindAuth, Err: errors.New("invalid key")}
}

const jobText = `Acme Corp is hiring.
We build payment systems.

The position is a Senior Backend Engineer on the payments team.

Requirements:
- Python
- SQL
- Leadership
`

const cvText = `Jane Doe
jane@example.com

Senior engineer with 6 years of experience in Python and SQL.`

func TestAnalyzeJobDescriptionAI(t *testing.T) {
	stub := newStub().reply("primary", "```json\n{\"position\": \"Backend Engineer\", \"requirements\": [\"Go\",\"SQL\",\"3\",\"4\",\"5\",\"6\",\"7\",\"8\",\"9\"], \"responsibilities\": \"Own services\", \"summary\": \"Build things\"}\n```", nil)
	a := New(stub, nil, testPolicy())

	jd := a.AnalyzeJobDescription(context.Background(), jobText)

	if jd.Source != hiring.SourceAI || jd.Position != "Backend Engineer" {
		t.Fatalf("unexpected result: %+v", jd)
	}
	if len(jd.Requirements) != hiring.MaxRequirements {
		t.Fatalf("expected requirements truncated to %d, got %d", hiring.MaxRequirements, len(jd.Requirements))
	}
	if !reflect.DeepEqual(jd.Responsibilities, []string{"Own services"}) {
		t.Fatalf("expected single responsibility, got %v", jd.Responsibilities)
	}
	if !strings.Contains(stub.prompts[0], "We build payment systems.") {
		t.Fatal("expected job text in prompt")
	}
}

func TestAnalyzeJobDescriptionRetriesOnFallbackModel(t *testing.T) {
	stub := newStub().
		reply("primary", "", rateLimited()).
		reply("fallback", `{"position": "Data Engineer", "requirements": []}`, nil)
	a := New(stub, nil, testPolicy())

	jd := a.AnalyzeJobDescription(context.Background(), jobText)

	if jd.Source != hiring.SourceAI || jd.Position != "Data Engineer" {
		t.Fatalf("unexpected result: %+v", jd)
	}
	if !reflect.DeepEqual(stub.calls, []string{"primary", "fallback"}) {
		t.Fatalf("unexpected calls: %v", stub.calls)
	}
}

func TestAnalyzeJobDescriptionFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		stub  *stubGenerator
		calls []string
	}{
		{
			name:  "rate limit exhausted",
			stub:  newStub().reply("primary", "", rateLimited()).reply("fallback", "", rateLimited()),
			calls: []string{"primary", "fallback"},
		},
		{
			name:  "missing position is malformed",
			stub:  newStub().reply("primary", `{"position": "  "}`, nil),
			calls: []string{"primary"},
		},
		{
			name:  "not json",
			stub:  newStub().reply("primary", "I cannot help with that", nil),
			calls: []string{"primary"},
		},
		{
			name:  "connectivity",
			stub:  newStub().reply("primary", "", &ai.ServiceError{Kind: ai.KindConnectivity, Err: errors.New("reset")}),
			calls: []string{"primary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.stub, nil, testPolicy())

			jd := a.AnalyzeJobDescription(context.Background(), jobText)

			if jd.Source != hiring.SourceHeuristic || jd.Position != "Senior Backend Engineer" {
				t.Fatalf("expected heuristic result, got %+v", jd)
			}
			if !reflect.DeepEqual(tt.stub.calls, tt.calls) {
				t.Fatalf("expected calls %v, got %v", tt.calls, tt.stub.calls)
			}
			if !a.Available() {
				t.Fatal("breaker must stay closed")
			}
		})
	}
}

func TestAuthFailureDisablesBackend(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	stub := newStub().reply("primary", "", authFailed())
	breaker := ai.NewAvailability(true, "")
	a := New(stub, breaker, testPolicy(), WithLogger(zap.New(core)))

	jd := a.AnalyzeJobDescription(context.Background(), jobText)
	if jd.Source != hiring.SourceHeuristic {
		t.Fatalf("expected heuristic result, got %+v", jd)
	}
	if breaker.Available() || a.Available() {
		t.Fatal("expected backend to be disabled")
	}

	match := a.AnalyzeCV(context.Background(), cvText, jd)
	if match.Source != hiring.SourceHeuristic {
		t.Fatalf("expected heuristic match, got %+v", match)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("expected no calls after disabling, got %v", stub.calls)
	}

	if observed.FilterMessage("ai backend disabled after authentication failure").Len() != 1 {
		t.Fatal("expected disable log entry")
	}
	entries := observed.FilterMessage("ai backend unavailable; using heuristic fallback").All()
	if len(entries) != 1 || entries[0].ContextMap()["ai_operation"] != opCV {
		t.Fatalf("expected unavailable log for analyze_cv, got %v", entries)
	}
}

func TestAnalyzeCVAIClampsScore(t *testing.T) {
	stub := newStub().reply("primary", `{"match_score": "250", "strengths": ["a","b","c","d","e","f"], "weaknesses": ["x","y","z","w"], "summary": "great"}`, nil)
	a := New(stub, nil, testPolicy())

	jd := hiring.JobDescription{Position: "Backend Engineer", Requirements: []string{"Go"}, Responsibilities: []string{"APIs"}}
	match := a.AnalyzeCV(context.Background(), cvText, jd)

	if match.Source != hiring.SourceAI || match.MatchScore != 100 {
		t.Fatalf("unexpected match: %+v", match)
	}
	if len(match.Strengths) != hiring.MaxStrengths || len(match.Weaknesses) != hiring.MaxWeaknesses {
		t.Fatalf("expected truncated lists, got %+v", match)
	}
	prompt := stub.prompts[0]
	if !strings.Contains(prompt, "Backend Engineer") || !strings.Contains(prompt, "- Go") || !strings.Contains(prompt, "- APIs") {
		t.Fatalf("prompt is missing job data: %s", prompt)
	}
}

func TestAnalyzeCVWithoutGenerator(t *testing.T) {
	a := New(nil, nil, testPolicy())

	jd := hiring.JobDescription{Requirements: []string{"Python", "SQL", "Leadership"}}
	match := a.AnalyzeCV(context.Background(), cvText, jd)

	if match.MatchScore != 53 || match.Source != hiring.SourceHeuristic {
		t.Fatalf("unexpected match: %+v", match)
	}
	if !strings.Contains(match.Summary, "Candidate Jane Doe has a match score of 53%") {
		t.Fatalf("unexpected summary: %q", match.Summary)
	}
}

func TestGenerateInterviewQuestions(t *testing.T) {
	five := `["q1","q2","q3","q4","q5"]`

	tests := []struct {
		name   string
		reply  string
		expect []string
	}{
		{name: "list", reply: five, expect: []string{"q1", "q2", "q3", "q4", "q5"}},
		{
			name:   "keyed",
			reply:  `{"questions": ["a","b","c","d","e","f","g","h","i","j","k","l"]}`,
			expect: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
		},
		{
			name:   "loose keeps member order",
			reply:  `{"technical": ["t1","t2"], "count": 3, "behavioral": "b1", "other": ["o1", 7, "o2"]}`,
			expect: []string{"t1", "t2", "b1", "o1", "o2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(newStub().reply("primary", tt.reply, nil), nil, testPolicy())
			got := a.GenerateInterviewQuestions(context.Background(), hiring.JobDescription{Position: "Engineer"}, hiring.Candidate{})
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestGenerateInterviewQuestionsFallback(t *testing.T) {
	jd := hiring.JobDescription{Requirements: []string{"Go", "SQL", "Kafka", "Redis"}}
	candidate := hiring.Candidate{Strengths: []string{"Go"}, Weaknesses: []string{"Kafka"}}

	tests := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "too few questions", stub: newStub().reply("primary", `["only one"]`, nil)},
		{name: "backend error", stub: newStub().reply("primary", "", errors.New("boom"))},
		{name: "no generator", stub: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gen ai.Generator
			if tt.stub != nil {
				gen = tt.stub
			}
			a := New(gen, nil, testPolicy())

			got := a.GenerateInterviewQuestions(context.Background(), jd, candidate)

			if len(got) != 10 {
				t.Fatalf("expected 10 fallback questions, got %d: %v", len(got), got)
			}
			if got[5] != "Can you describe your experience with Go?" || got[7] != "Can you describe your experience with Kafka?" {
				t.Fatalf("unexpected requirement questions: %v", got[5:8])
			}
			if !strings.HasPrefix(got[8], "You mentioned Go.") || got[9] != "How do you plan to develop your skills in Kafka?" {
				t.Fatalf("unexpected candidate questions: %v", got[8:])
			}
		})
	}
}

func TestFallbackQuestionsFloor(t *testing.T) {
	got := FallbackQuestions(hiring.JobDescription{}, hiring.Candidate{})
	if !reflect.DeepEqual(got, genericQuestions) {
		t.Fatalf("expected generic questions, got %v", got)
	}
}
