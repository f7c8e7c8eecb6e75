package googlegen

// RequestOption configures a single BuildRequest call (functional options
// pattern). Options never mutate client-level ModelParams.
type RequestOption func(*requestOptions)

type requestOptions struct {
	genConfig *GenerationConfig
	safety    []SafetySetting
	tools     []ToolDeclaration
}

// WithGenerationConfig sets per-call sampling overrides. Fields set here
// take precedence over the same ModelParams fields for this call only.
func WithGenerationConfig(cfg GenerationConfig) RequestOption {
	return func(o *requestOptions) {
		o.genConfig = &cfg
	}
}

// WithSafetySettings replaces the client-level safety settings for this call.
func WithSafetySettings(settings ...SafetySetting) RequestOption {
	return func(o *requestOptions) {
		o.safety = settings
	}
}

// WithTools attaches opaque tool declarations, passed through to the
// backend unmodified. Only the structured content family supports tools.
func WithTools(tools ...ToolDeclaration) RequestOption {
	return func(o *requestOptions) {
		o.tools = tools
	}
}
