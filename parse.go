package googlegen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/skosovsky/googlegen/wire"
)

// ParseResponse normalizes a single materialized backend response body for
// the given model family. Candidates keep backend order; a malformed body
// or a candidate with no content fails with a *ParseError carrying the
// offending raw fragment.
func ParseResponse(family Family, raw json.RawMessage) (*Response, error) {
	switch family.orDefault() {
	case FamilyGenerateContent:
		return parseGenerateContent(raw)
	case FamilyGenerateText:
		return parseGenerateText(raw)
	default:
		return nil, &ParseError{Family: family, Raw: raw, Err: ErrUnknownFamily}
	}
}

func parseGenerateContent(raw json.RawMessage) (*Response, error) {
	// Candidates are unmarshalled individually so a ParseError can carry
	// exactly the fragment that failed.
	var envelope struct {
		Candidates     []json.RawMessage    `json:"candidates"`
		PromptFeedback *wire.PromptFeedback `json:"promptFeedback"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ParseError{Family: FamilyGenerateContent, Raw: raw, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
	}
	out := &Response{}
	for i, rawCand := range envelope.Candidates {
		var c wire.Candidate
		if err := json.Unmarshal(rawCand, &c); err != nil {
			return nil, &ParseError{Family: FamilyGenerateContent, Raw: rawCand, Err: fmt.Errorf("%w: candidate %d: %w", ErrMalformedResponse, i, err)}
		}
		if c.Content == nil {
			return nil, &ParseError{Family: FamilyGenerateContent, Raw: rawCand, Err: ErrMissingContent}
		}
		content, err := parseContent(*c.Content)
		if err != nil {
			return nil, &ParseError{Family: FamilyGenerateContent, Raw: rawCand, Err: err}
		}
		out.Candidates = append(out.Candidates, Candidate{
			Content:       content,
			FinishReason:  c.FinishReason,
			Index:         candidateIndex(c.Index, i),
			TokenCount:    c.TokenCount,
			SafetyRatings: parseRatings(c.SafetyRatings),
		})
	}
	out.PromptFeedback = parseFeedback(envelope.PromptFeedback)
	return out, nil
}

// candidateIndex keeps the backend-supplied index and falls back to the
// position in the sequence when the backend omitted it.
func candidateIndex(idx *int, position int) int {
	if idx != nil {
		return *idx
	}
	return position
}

func parseContent(c wire.Content) (Content, error) {
	out := Content{Role: Role(c.Role), Parts: make([]Part, 0, len(c.Parts))}
	for _, p := range c.Parts {
		part, err := parsePart(p)
		if err != nil {
			return Content{}, err
		}
		out.Parts = append(out.Parts, part)
	}
	return out, nil
}

func parsePart(p wire.Part) (Part, error) {
	switch {
	case p.InlineData != nil:
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: inline data is not base64: %w", ErrMalformedResponse, err)
		}
		return BlobPart{MIMEType: p.InlineData.MIMEType, Data: data}, nil
	case p.FileData != nil:
		return FileDataPart{MIMEType: p.FileData.MIMEType, FileURI: p.FileData.FileURI}, nil
	case p.FunctionCall != nil:
		id := p.FunctionCall.ID
		if id == "" {
			// Backends that predate call IDs omit them; synthesize one so
			// callers can correlate results.
			id = uuid.NewString()
		}
		return FunctionCallPart{ID: id, Name: p.FunctionCall.Name, Args: p.FunctionCall.Args}, nil
	case p.FunctionResponse != nil:
		return FunctionResponsePart{Name: p.FunctionResponse.Name, Response: p.FunctionResponse.Response}, nil
	default:
		return TextPart{Text: p.Text}, nil
	}
}

func parseGenerateText(raw json.RawMessage) (*Response, error) {
	var body wire.GenerateTextResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ParseError{Family: FamilyGenerateText, Raw: raw, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
	}
	out := &Response{}
	for i, c := range body.Candidates {
		out.Candidates = append(out.Candidates, Candidate{
			Content:       Content{Role: RoleModel, Parts: []Part{TextPart{Text: c.Output}}},
			Index:         i,
			SafetyRatings: parseRatings(c.SafetyRatings),
		})
	}
	out.PromptFeedback = parseTextFeedback(body)
	return out, nil
}

// parseTextFeedback folds legacy filters and safety feedback into the
// normalized prompt feedback form. Returns nil when the body carries neither.
func parseTextFeedback(body wire.GenerateTextResponse) *PromptFeedback {
	if len(body.Filters) == 0 && len(body.SafetyFeedback) == 0 {
		return nil
	}
	fb := &PromptFeedback{}
	if len(body.Filters) > 0 {
		fb.BlockReason = body.Filters[0].Reason
	}
	for _, sf := range body.SafetyFeedback {
		if sf.Rating != nil {
			fb.SafetyRatings = append(fb.SafetyRatings, SafetyRating{
				Category:    sf.Rating.Category,
				Probability: sf.Rating.Probability,
			})
		}
	}
	return fb
}

func parseRatings(src []wire.SafetyRating) []SafetyRating {
	if len(src) == 0 {
		return nil
	}
	out := make([]SafetyRating, 0, len(src))
	for _, r := range src {
		out = append(out, SafetyRating{Category: r.Category, Probability: r.Probability})
	}
	return out
}

func parseFeedback(src *wire.PromptFeedback) *PromptFeedback {
	if src == nil {
		return nil
	}
	return &PromptFeedback{
		BlockReason:   src.BlockReason,
		SafetyRatings: parseRatings(src.SafetyRatings),
	}
}
