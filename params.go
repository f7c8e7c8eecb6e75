package googlegen

import "github.com/skosovsky/googlegen/wire"

// ModelParams holds client-level generation defaults. Every sampling field
// is independently optional; a nil field means the backend default applies
// and the field is omitted from the outgoing payload.
type ModelParams struct {
	Model  string
	Family Family // zero value means FamilyGenerateContent

	Temperature     *float64
	MaxOutputTokens *int
	TopP            *float64
	TopK            *int
	StopSequences   []string
	SafetySettings  []SafetySetting
}

// GenerationConfig is a per-call override of sampling parameters. Fields
// set here take precedence over the same fields in ModelParams for that
// single call.
type GenerationConfig struct {
	Temperature     *float64
	MaxOutputTokens *int
	TopP            *float64
	TopK            *int
	StopSequences   []string
	CandidateCount  *int
}

// SafetySetting maps a harm category to a blocking threshold.
type SafetySetting struct {
	Category  string
	Threshold string
}

// SafetyRating is a backend-assigned harm probability for a category.
type SafetyRating struct {
	Category    string
	Probability string
}

// mergeConfig resolves each sampling field with per-call precedence:
// override value if present, else the client-level value, else absent.
// Returns nil when no field resolves, so generationConfig is omitted
// entirely from the payload.
func mergeConfig(params ModelParams, override *GenerationConfig) *wire.GenerationConfig {
	out := &wire.GenerationConfig{
		Temperature:     params.Temperature,
		MaxOutputTokens: params.MaxOutputTokens,
		TopP:            params.TopP,
		TopK:            params.TopK,
		StopSequences:   params.StopSequences,
	}
	if override != nil {
		if override.Temperature != nil {
			out.Temperature = override.Temperature
		}
		if override.MaxOutputTokens != nil {
			out.MaxOutputTokens = override.MaxOutputTokens
		}
		if override.TopP != nil {
			out.TopP = override.TopP
		}
		if override.TopK != nil {
			out.TopK = override.TopK
		}
		if len(override.StopSequences) > 0 {
			out.StopSequences = override.StopSequences
		}
		out.CandidateCount = override.CandidateCount
	}
	if out.Temperature == nil && out.MaxOutputTokens == nil && out.TopP == nil &&
		out.TopK == nil && len(out.StopSequences) == 0 && out.CandidateCount == nil {
		return nil
	}
	return out
}

// mergeSafety resolves safety settings: per-call settings replace the
// client-level set when supplied.
func mergeSafety(params ModelParams, override []SafetySetting) []wire.SafetySetting {
	src := params.SafetySettings
	if len(override) > 0 {
		src = override
	}
	if len(src) == 0 {
		return nil
	}
	out := make([]wire.SafetySetting, 0, len(src))
	for _, s := range src {
		out = append(out, wire.SafetySetting{Category: s.Category, Threshold: s.Threshold})
	}
	return out
}
