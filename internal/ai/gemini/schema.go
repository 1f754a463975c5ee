package gemini

import (
	"google.golang.org/genai"

	"github.com/spigell/autohire/internal/ai"
)

const jsonMIMEType = "application/json"

var (
	stringSchema = &genai.Schema{Type: genai.TypeString}
	listSchema   = &genai.Schema{Type: genai.TypeArray, Items: stringSchema}
)

var jobDescriptionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"position":         stringSchema,
		"requirements":     listSchema,
		"preferred_skills": listSchema,
		"experience_level": stringSchema,
		"responsibilities": listSchema,
		"company_info":     stringSchema,
		"summary":          stringSchema,
	},
	Required: []string{"position", "requirements", "responsibilities", "summary"},
	PropertyOrdering: []string{
		"position", "requirements", "preferred_skills", "experience_level",
		"responsibilities", "company_info", "summary",
	},
}

var matchSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"match_score": {Type: genai.TypeInteger},
		"strengths":   listSchema,
		"weaknesses":  listSchema,
		"summary":     stringSchema,
	},
	Required:         []string{"match_score", "strengths", "weaknesses", "summary"},
	PropertyOrdering: []string{"match_score", "strengths", "weaknesses", "summary"},
}

// configFor requests JSON output. Questions carry no schema because several response
// layouts are accepted for them.
func configFor(shape ai.Shape) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType}

	switch shape {
	case ai.ShapeJobDescription:
		cfg.ResponseSchema = jobDescriptionSchema
	case ai.ShapeMatch:
		cfg.ResponseSchema = matchSchema
	}

	return cfg
}
