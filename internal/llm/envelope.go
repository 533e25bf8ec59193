package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerkit/cvforge/internal/schemas"
	"github.com/careerkit/cvforge/internal/types"
)

// envelopePrompt instructs the model to emit a widget envelope. The
// contract mirrors the envelope schema: scored widgets per CV fact,
// linked to source experiences.
const envelopePrompt = `You generate CV content as a JSON "widget envelope".

Given the candidate profile and the job offer below, produce JSON with this shape:
{
  "widgets": [
    {
      "id": "w1",
      "type": "experience_header" | "experience_bullet" | "summary_block" | "skill_item",
      "section": "experience" | "competences_techniques" | "soft_skills" | "summary",
      "text": "...",
      "relevance_score": 0-100,
      "sources": {"rag_experience_id": "<id of the source experience>"}
    }
  ],
  "profil_summary": {"nom": "...", "titre": "...", "pitch": "..."}
}

Rules:
- One experience_header per relevant experience, text formatted "Role - Company",
  with sources.rag_experience_id set to the experience id from the profile.
- experience_bullet widgets must reference their source experience the same way.
- relevance_score reflects how relevant the content is to the job offer (0-100).
- Never invent facts absent from the profile.
- Output JSON only.

PROFILE:
%s

JOB OFFER:
%s`

// GenerateEnvelope asks the generator for a widget envelope and validates
// it at the boundary before handing it to the pipeline. Invalid generator
// output surfaces as a schemas validation error; no retry happens here.
func GenerateEnvelope(ctx context.Context, client Client, profile *types.RAGProfile, job *types.JobContext) (*types.WidgetEnvelope, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job context: %w", err)
	}

	prompt := fmt.Sprintf(envelopePrompt, profileJSON, jobJSON)

	raw, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("widget generation failed: %w", err)
	}

	envelope, err := schemas.ValidateEnvelope([]byte(CleanJSONBlock(raw)))
	if err != nil {
		return nil, err
	}
	return envelope, nil
}
