package schemas

import (
	"encoding/json"

	"github.com/careerkit/cvforge/internal/types"
)

// widgetEnvelopeSchema is the boundary contract for LLM output.
// Widgets must be a non-empty ordered sequence and every relevance
// score a non-negative integer.
const widgetEnvelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["widgets"],
  "properties": {
    "widgets": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "type", "text", "relevance_score"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {
            "type": "string",
            "enum": [
              "summary_block",
              "experience_header",
              "experience_bullet",
              "skill_item",
              "education_item",
              "language_item"
            ]
          },
          "section": {"type": "string"},
          "text": {"type": "string"},
          "relevance_score": {"type": "integer", "minimum": 0},
          "sources": {
            "type": "object",
            "properties": {
              "rag_experience_id": {"type": "string"}
            }
          }
        }
      }
    },
    "profil_summary": {"type": "object"},
    "job_context": {"type": "object"},
    "meta": {"type": "object"}
  }
}`

// ValidateEnvelope validates raw JSON against the widget envelope schema
// and decodes it. It returns a *ValidationError on contract violations
// (zero widgets, negative scores, missing fields); malformed JSON comes
// back wrapped the same way so callers handle one failure shape.
func ValidateEnvelope(data []byte) (*types.WidgetEnvelope, error) {
	if err := ValidateJSONString(widgetEnvelopeSchema, string(data)); err != nil {
		return nil, err
	}

	var envelope types.WidgetEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	return &envelope, nil
}

// ValidateEnvelopeStruct re-checks an already decoded envelope. Used when
// the envelope was built in memory rather than parsed from the wire.
func ValidateEnvelopeStruct(envelope *types.WidgetEnvelope) error {
	if envelope == nil {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: "envelope is required"}},
		}
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	_, err = ValidateEnvelope(data)
	return err
}
