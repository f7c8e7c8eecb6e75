package googlegen

// Response is the normalized backend reply, identical in shape for both
// model families. Optional fields stay nil when the backend omitted them;
// absence is never flattened into a zero value.
type Response struct {
	Candidates     []Candidate
	PromptFeedback *PromptFeedback
}

// Candidate is one backend-proposed completion, in backend order.
type Candidate struct {
	Content       Content
	FinishReason  string
	Index         int
	TokenCount    *int
	SafetyRatings []SafetyRating
}

// PromptFeedback is prompt-level safety feedback.
type PromptFeedback struct {
	BlockReason   string
	SafetyRatings []SafetyRating
}

// Text returns the concatenated text of the first candidate, or "" when
// there are no candidates.
func (r *Response) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Text()
}
