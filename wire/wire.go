package wire

// Request is a sealed interface over the per-family request payloads.
// Callers type-assert to *GenerateContentRequest or *GenerateTextRequest;
// both serialize with encoding/json as-is.
type Request interface {
	isRequest()
}

// Compile-time checks that both dialects implement Request.
var (
	_ Request = (*GenerateContentRequest)(nil)
	_ Request = (*GenerateTextRequest)(nil)
)

// SafetySetting maps a harm category to a blocking threshold.
type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// SafetyRating is a backend-assigned harm probability for a category.
type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}
