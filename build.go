package googlegen

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skosovsky/googlegen/wire"
)

// BuildRequest translates a platform-agnostic request into the wire payload
// for the platform and family selected by conn and params. The result is
// ready to serialize and hand to a transport; no I/O happens here.
// Per-call options override client-level ModelParams field by field; a
// field absent in both layers is omitted from the payload.
func BuildRequest(conn ConnectionConfig, params ModelParams, contents []Content, opts ...RequestOption) (wire.Request, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	family := params.Family.orDefault()
	switch family {
	case FamilyGenerateContent:
		return buildGenerateContent(conn, params, contents, o)
	case FamilyGenerateText:
		return buildGenerateText(conn, params, contents, o)
	default:
		return nil, &ValidationError{Platform: conn.Platform, Family: params.Family, Err: ErrUnknownFamily}
	}
}

func buildGenerateContent(conn ConnectionConfig, params ModelParams, contents []Content, o requestOptions) (*wire.GenerateContentRequest, error) {
	if len(contents) == 0 {
		return nil, &ValidationError{Platform: conn.Platform, Family: FamilyGenerateContent, Detail: "contents", Err: ErrEmptyContents}
	}
	out := &wire.GenerateContentRequest{
		Contents:         make([]wire.Content, 0, len(contents)),
		Tools:            o.tools,
		SafetySettings:   mergeSafety(params, o.safety),
		GenerationConfig: mergeConfig(params, o.genConfig),
	}
	for i, c := range contents {
		wc, err := buildContent(conn, FamilyGenerateContent, i, c)
		if err != nil {
			return nil, err
		}
		out.Contents = append(out.Contents, wc)
	}
	return out, nil
}

func buildContent(conn ConnectionConfig, family Family, idx int, c Content) (wire.Content, error) {
	if roleRequired[family] && c.Role == "" {
		return wire.Content{}, &ValidationError{
			Platform: conn.Platform, Family: family,
			Detail: fmt.Sprintf("contents[%d].role", idx), Err: ErrMissingRole,
		}
	}
	if c.Role != "" && !validRoles[c.Role] {
		return wire.Content{}, &ValidationError{
			Platform: conn.Platform, Family: family,
			Detail: fmt.Sprintf("contents[%d].role %q", idx, c.Role), Err: ErrUnsupportedRole,
		}
	}
	if len(c.Parts) == 0 {
		return wire.Content{}, &ValidationError{
			Platform: conn.Platform, Family: family,
			Detail: fmt.Sprintf("contents[%d].parts", idx), Err: ErrEmptyParts,
		}
	}
	wc := wire.Content{Role: string(c.Role), Parts: make([]wire.Part, 0, len(c.Parts))}
	for j, p := range c.Parts {
		if !allowPart(conn.Platform, family, p) {
			return wire.Content{}, &ValidationError{
				Platform: conn.Platform, Family: family,
				Detail: fmt.Sprintf("contents[%d].parts[%d] (%s)", idx, j, kindOf(p)), Err: ErrUnsupportedPart,
			}
		}
		wc.Parts = append(wc.Parts, buildPart(p))
	}
	return wc, nil
}

func buildPart(p Part) wire.Part {
	switch x := p.(type) {
	case TextPart:
		return wire.Part{Text: x.Text}
	case BlobPart:
		return wire.Part{InlineData: &wire.Blob{
			MIMEType: x.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(x.Data),
		}}
	case FileDataPart:
		return wire.Part{FileData: &wire.FileData{MIMEType: x.MIMEType, FileURI: x.FileURI}}
	case FunctionCallPart:
		return wire.Part{FunctionCall: &wire.FunctionCall{ID: x.ID, Name: x.Name, Args: x.Args}}
	case FunctionResponsePart:
		return wire.Part{FunctionResponse: &wire.FunctionResponse{Name: x.Name, Response: x.Response}}
	default:
		// Unreachable while Part stays sealed; allowPart rejects unknowns first.
		return wire.Part{}
	}
}

// buildGenerateText flattens the turns into a single prompt string. Only
// text parts are accepted; the legacy dialect has no multi-modal payloads
// and no tool support.
func buildGenerateText(conn ConnectionConfig, params ModelParams, contents []Content, o requestOptions) (*wire.GenerateTextRequest, error) {
	if len(o.tools) > 0 {
		return nil, &ValidationError{Platform: conn.Platform, Family: FamilyGenerateText, Detail: "tools", Err: ErrUnsupportedTools}
	}
	var prompt strings.Builder
	for i, c := range contents {
		if c.Role != "" && !validRoles[c.Role] {
			return nil, &ValidationError{
				Platform: conn.Platform, Family: FamilyGenerateText,
				Detail: fmt.Sprintf("contents[%d].role %q", i, c.Role), Err: ErrUnsupportedRole,
			}
		}
		for j, p := range c.Parts {
			if !allowPart(conn.Platform, FamilyGenerateText, p) {
				return nil, &ValidationError{
					Platform: conn.Platform, Family: FamilyGenerateText,
					Detail: fmt.Sprintf("contents[%d].parts[%d] (%s)", i, j, kindOf(p)), Err: ErrUnsupportedPart,
				}
			}
		}
		if prompt.Len() > 0 {
			prompt.WriteString("\n")
		}
		prompt.WriteString(c.Text())
	}
	out := &wire.GenerateTextRequest{
		Prompt:         wire.TextPrompt{Text: prompt.String()},
		SafetySettings: mergeSafety(params, o.safety),
	}
	if cfg := mergeConfig(params, o.genConfig); cfg != nil {
		out.Temperature = cfg.Temperature
		out.TopP = cfg.TopP
		out.TopK = cfg.TopK
		out.CandidateCount = cfg.CandidateCount
		out.MaxOutputTokens = cfg.MaxOutputTokens
		out.StopSequences = cfg.StopSequences
	}
	return out, nil
}
