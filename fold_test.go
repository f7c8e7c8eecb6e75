package googlegen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragment(t *testing.T, text, finish string, tokens *int) json.RawMessage {
	t.Helper()
	cand := map[string]any{
		"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}},
		"index":   0,
	}
	if finish != "" {
		cand["finishReason"] = finish
	}
	if tokens != nil {
		cand["tokenCount"] = *tokens
	}
	raw, err := json.Marshal(map[string]any{"candidates": []any{cand}})
	require.NoError(t, err)
	return raw
}

func TestFoldFragments_Empty(t *testing.T) {
	t.Parallel()
	resp, err := FoldFragments(FamilyGenerateContent, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
	assert.Nil(t, resp.PromptFeedback)
	assert.Equal(t, "", resp.Text())
}

func TestFoldFragments_ConcatenatesText(t *testing.T) {
	t.Parallel()
	frags := []json.RawMessage{
		fragment(t, "Hel", "", nil),
		fragment(t, "lo", "STOP", nil),
	}
	resp, err := FoldFragments(FamilyGenerateContent, frags)
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "Hello", resp.Candidates[0].Content.Text())
	assert.Equal(t, "STOP", resp.Candidates[0].FinishReason)
	require.Len(t, resp.Candidates[0].Content.Parts, 1, "streamed text folds into one part")
}

func TestFoldFragments_SumsTokenCounts(t *testing.T) {
	t.Parallel()
	frags := []json.RawMessage{
		fragment(t, "a", "", ptr(3)),
		fragment(t, "b", "", nil),
		fragment(t, "c", "STOP", ptr(4)),
	}
	resp, err := FoldFragments(FamilyGenerateContent, frags)
	require.NoError(t, err)
	require.NotNil(t, resp.Candidates[0].TokenCount)
	assert.Equal(t, 7, *resp.Candidates[0].TokenCount)
}

func TestFoldFragments_NoTokensStaysAbsent(t *testing.T) {
	t.Parallel()
	resp, err := FoldFragments(FamilyGenerateContent, []json.RawMessage{fragment(t, "x", "STOP", nil)})
	require.NoError(t, err)
	assert.Nil(t, resp.Candidates[0].TokenCount)
}

func TestFoldFragments_MultiCandidateOrder(t *testing.T) {
	t.Parallel()
	frags := []json.RawMessage{
		json.RawMessage(`{"candidates": [
			{"content": {"parts": [{"text": "B"}]}, "index": 1},
			{"content": {"parts": [{"text": "A"}]}, "index": 0}
		]}`),
		json.RawMessage(`{"candidates": [
			{"content": {"parts": [{"text": "2"}]}, "index": 1},
			{"content": {"parts": [{"text": "1"}]}, "index": 0}
		]}`),
	}
	resp, err := FoldFragments(FamilyGenerateContent, frags)
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 2)
	// First-seen backend order, not sorted by index.
	assert.Equal(t, 1, resp.Candidates[0].Index)
	assert.Equal(t, "B2", resp.Candidates[0].Content.Text())
	assert.Equal(t, 0, resp.Candidates[1].Index)
	assert.Equal(t, "A1", resp.Candidates[1].Content.Text())
}

func TestFoldFragments_MalformedFragment(t *testing.T) {
	t.Parallel()
	frags := []json.RawMessage{
		fragment(t, "ok", "", nil),
		json.RawMessage(`{"candidates": [{"index": 0}]}`),
	}
	_, err := FoldFragments(FamilyGenerateContent, frags)
	require.ErrorIs(t, err, ErrMissingContent)
}

func TestFoldFragments_TextFamily(t *testing.T) {
	t.Parallel()
	frags := []json.RawMessage{
		json.RawMessage(`{"candidates": [{"output": "Hel"}]}`),
		json.RawMessage(`{"candidates": [{"output": "lo"}]}`),
	}
	resp, err := FoldFragments(FamilyGenerateText, frags)
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "Hello", resp.Candidates[0].Content.Text())
	assert.Empty(t, resp.Candidates[0].FinishReason, "text family tracks no finish reason")
}

func TestStream_Incremental(t *testing.T) {
	t.Parallel()
	s := NewStream(FamilyGenerateContent)
	require.NoError(t, s.Push(fragment(t, "to", "", nil)))
	require.NoError(t, s.Push(json.RawMessage(`{"candidates": [{
		"content": {"parts": [{"functionCall": {"id": "c1", "name": "lookup", "args": {}}}]},
		"index": 0
	}]}`)))
	require.NoError(t, s.Push(fragment(t, "!", "STOP", nil)))

	resp := s.Response()
	require.Len(t, resp.Candidates, 1)
	parts := resp.Candidates[0].Content.Parts
	require.Len(t, parts, 3, "function call splits the text runs")
	assert.Equal(t, TextPart{Text: "to"}, parts[0])
	call, ok := parts[1].(FunctionCallPart)
	require.True(t, ok)
	assert.Equal(t, "lookup", call.Name)
	assert.Equal(t, TextPart{Text: "!"}, parts[2])
}

func TestStream_PushErrorLeavesStateUsable(t *testing.T) {
	t.Parallel()
	s := NewStream(FamilyGenerateContent)
	require.NoError(t, s.Push(fragment(t, "keep", "", nil)))
	require.Error(t, s.Push(json.RawMessage(`garbage`)))
	// The accumulated state is untouched by the failed push.
	assert.Equal(t, "keep", s.Response().Text())
}

func TestStream_PromptFeedbackLastWins(t *testing.T) {
	t.Parallel()
	s := NewStream(FamilyGenerateContent)
	require.NoError(t, s.Push(json.RawMessage(`{"candidates": [], "promptFeedback": {"blockReason": "OTHER"}}`)))
	require.NoError(t, s.Push(json.RawMessage(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`)))
	resp := s.Response()
	require.NotNil(t, resp.PromptFeedback)
	assert.Equal(t, "SAFETY", resp.PromptFeedback.BlockReason)
}
