package googlegen

import "encoding/json"

// foldRules captures how a family's streaming fragments accumulate. The
// two families are not assumed to fold identically; per-family behavior is
// configuration, not branching.
type foldRules struct {
	sumTokenCounts bool // add per-fragment token counts into the total
	trackFinish    bool // carry the finish reason from the last fragment that set one
}

var familyFoldRules = map[Family]foldRules{
	// Structured fragments carry incremental token counts and a terminal
	// finish reason.
	FamilyGenerateContent: {sumTokenCounts: true, trackFinish: true},
	// Legacy fragments carry neither; only output text accumulates.
	FamilyGenerateText: {},
}

// Stream folds streaming response fragments incrementally. Create one per
// backend stream with NewStream, Push each raw fragment as it arrives, and
// call Response once the stream ends. A Stream is not safe for concurrent
// Push; an SSE stream has a single consumer.
type Stream struct {
	family Family
	rules  foldRules

	order    []int // candidate indexes in first-seen order
	acc      map[int]*candidateAcc
	feedback *PromptFeedback
}

type candidateAcc struct {
	parts        []Part
	finishReason string
	tokenCount   *int
	ratings      []SafetyRating
}

// NewStream returns a fold accumulator for the given family.
func NewStream(family Family) *Stream {
	family = family.orDefault()
	return &Stream{
		family: family,
		rules:  familyFoldRules[family],
		acc:    make(map[int]*candidateAcc),
	}
}

// Push parses one raw fragment and folds it in. On a malformed fragment it
// returns a *ParseError and leaves the accumulated state untouched, so a
// failed stream never yields a partially corrupt response.
func (s *Stream) Push(raw json.RawMessage) error {
	frag, err := ParseResponse(s.family, raw)
	if err != nil {
		return err
	}
	for _, c := range frag.Candidates {
		a, ok := s.acc[c.Index]
		if !ok {
			a = &candidateAcc{}
			s.acc[c.Index] = a
			s.order = append(s.order, c.Index)
		}
		for _, p := range c.Content.Parts {
			a.parts = appendPart(a.parts, p)
		}
		if s.rules.trackFinish && c.FinishReason != "" {
			a.finishReason = c.FinishReason
		}
		if s.rules.sumTokenCounts && c.TokenCount != nil {
			total := *c.TokenCount
			if a.tokenCount != nil {
				total += *a.tokenCount
			}
			a.tokenCount = &total
		}
		if len(c.SafetyRatings) > 0 {
			a.ratings = c.SafetyRatings
		}
	}
	if frag.PromptFeedback != nil {
		s.feedback = frag.PromptFeedback
	}
	return nil
}

// appendPart appends p, concatenating adjacent text parts so streamed text
// accumulates as one part in arrival order.
func appendPart(parts []Part, p Part) []Part {
	if t, ok := p.(TextPart); ok && len(parts) > 0 {
		if last, ok := parts[len(parts)-1].(TextPart); ok {
			parts[len(parts)-1] = TextPart{Text: last.Text + t.Text}
			return parts
		}
	}
	return append(parts, p)
}

// Response materializes the folded state. Candidates come out in the order
// their indexes were first supplied by the backend. Folding zero fragments
// yields a response with no candidates and no feedback.
func (s *Stream) Response() *Response {
	out := &Response{PromptFeedback: s.feedback}
	for _, idx := range s.order {
		a := s.acc[idx]
		out.Candidates = append(out.Candidates, Candidate{
			Content:       Content{Role: RoleModel, Parts: a.parts},
			FinishReason:  a.finishReason,
			Index:         idx,
			TokenCount:    a.tokenCount,
			SafetyRatings: a.ratings,
		})
	}
	return out
}

// FoldFragments folds an ordered fragment sequence in one pass. It is the
// synchronous form of Stream for callers that already hold every fragment.
func FoldFragments(family Family, fragments []json.RawMessage) (*Response, error) {
	s := NewStream(family)
	for _, f := range fragments {
		if err := s.Push(f); err != nil {
			return nil, err
		}
	}
	return s.Response(), nil
}
