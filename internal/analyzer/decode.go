package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/autohire/internal/ai"
	"github.com/spigell/autohire/internal/hiring"
)

func decodeJobDescription(raw string) (hiring.JobDescription, error) {
	var jd hiring.JobDescription
	if err := decodeObject(raw, ai.ShapeJobDescription, &jd); err != nil {
		return jd, err
	}

	jd.Position = strings.TrimSpace(jd.Position)
	if jd.Position == "" {
		return jd, &ai.MalformedResponseError{Shape: ai.ShapeJobDescription, Reason: "position is missing"}
	}

	jd.Requirements = hiring.Truncate(jd.Requirements, hiring.MaxRequirements)
	jd.Responsibilities = hiring.Truncate(jd.Responsibilities, hiring.MaxResponsibilities)
	if jd.PreferredSkills == nil {
		jd.PreferredSkills = []string{}
	}
	jd.Source = hiring.SourceAI
	return jd, nil
}

func decodeMatch(raw string) (hiring.MatchResult, error) {
	var match hiring.MatchResult
	if err := decodeObject(raw, ai.ShapeMatch, &match); err != nil {
		return match, err
	}

	match.MatchScore = hiring.ClampScore(match.MatchScore)
	match.Strengths = hiring.Truncate(match.Strengths, hiring.MaxStrengths)
	match.Weaknesses = hiring.Truncate(match.Weaknesses, hiring.MaxWeaknesses)
	match.Source = hiring.SourceAI
	return match, nil
}

// decodeObject parses a JSON object and weakly decodes it into out, so numbers sent as
// strings or single strings sent instead of lists are still accepted.
func decodeObject(raw string, shape ai.Shape, out any) error {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return &ai.MalformedResponseError{Shape: shape, Reason: "not a json object", Err: err}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return &ai.MalformedResponseError{Shape: shape, Reason: "unexpected field types", Err: err}
	}
	return nil
}

// questionsLayout tags the accepted layouts of a questions response.
type questionsLayout int

const (
	// layoutList is a bare JSON array.
	layoutList questionsLayout = iota
	// layoutKeyed is an object with a "questions" member.
	layoutKeyed
	// layoutLoose is any other object; its string and string-list members are used in order.
	layoutLoose
)

type looseMember struct {
	key   string
	value any
}

type questionsPayload struct {
	layout  questionsLayout
	items   any
	members []looseMember
}

func decodeQuestions(raw string) ([]string, error) {
	payload, err := parseQuestionsPayload(extractJSON(raw))
	if err != nil {
		return nil, &ai.MalformedResponseError{Shape: ai.ShapeQuestions, Reason: "unsupported layout", Err: err}
	}

	questions := payload.canonical()
	if len(questions) < hiring.MinQuestions {
		return nil, &ai.MalformedResponseError{
			Shape:  ai.ShapeQuestions,
			Reason: fmt.Sprintf("got %d questions, need at least %d", len(questions), hiring.MinQuestions),
		}
	}
	return hiring.Truncate(questions, hiring.MaxQuestions), nil
}

func parseQuestionsPayload(raw string) (questionsPayload, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))

	token, err := decoder.Token()
	if err != nil {
		return questionsPayload{}, err
	}

	switch token {
	case json.Delim('['):
		var items []any
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return questionsPayload{}, err
		}
		return questionsPayload{layout: layoutList, items: items}, nil
	case json.Delim('{'):
		members, err := objectMembers(decoder)
		if err != nil {
			return questionsPayload{}, err
		}
		for _, m := range members {
			if m.key == "questions" {
				return questionsPayload{layout: layoutKeyed, items: m.value}, nil
			}
		}
		return questionsPayload{layout: layoutLoose, members: members}, nil
	default:
		return questionsPayload{}, fmt.Errorf("expected array or object, got %v", token)
	}
}

// objectMembers reads the remaining members of an object whose opening brace was consumed,
// keeping their order.
func objectMembers(decoder *json.Decoder) ([]looseMember, error) {
	var members []looseMember
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}

		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, looseMember{key: key, value: value})
	}

	if _, err := decoder.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return members, nil
}

// canonical flattens every layout into the ordered list of non-empty question strings.
func (p questionsPayload) canonical() []string {
	var out []string
	switch p.layout {
	case layoutList, layoutKeyed:
		out = appendStrings(out, p.items)
	case layoutLoose:
		for _, m := range p.members {
			out = appendStrings(out, m.value)
		}
	}
	return out
}

func appendStrings(out []string, value any) []string {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
