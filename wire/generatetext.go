package wire

// GenerateTextRequest is the legacy completion-family request body: one
// flattened prompt with sampling parameters at the top level.
type GenerateTextRequest struct {
	Prompt          TextPrompt      `json:"prompt"`
	Temperature     *float64        `json:"temperature,omitempty"`
	TopP            *float64        `json:"topP,omitempty"`
	TopK            *int            `json:"topK,omitempty"`
	CandidateCount  *int            `json:"candidateCount,omitempty"`
	MaxOutputTokens *int            `json:"maxOutputTokens,omitempty"`
	StopSequences   []string        `json:"stopSequences,omitempty"`
	SafetySettings  []SafetySetting `json:"safetySettings,omitempty"`
}

func (*GenerateTextRequest) isRequest() {}

// TextPrompt wraps the prompt text.
type TextPrompt struct {
	Text string `json:"text"`
}

// GenerateTextResponse is the legacy completion-family response body.
type GenerateTextResponse struct {
	Candidates     []TextCandidate  `json:"candidates"`
	Filters        []ContentFilter  `json:"filters,omitempty"`
	SafetyFeedback []SafetyFeedback `json:"safetyFeedback,omitempty"`
}

// TextCandidate is one completion proposed by a legacy-family model.
type TextCandidate struct {
	Output        string         `json:"output"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

// ContentFilter explains why prompt content was filtered.
type ContentFilter struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// SafetyFeedback pairs a rating with the setting that triggered it.
type SafetyFeedback struct {
	Rating  *SafetyRating  `json:"rating,omitempty"`
	Setting *SafetySetting `json:"setting,omitempty"`
}
