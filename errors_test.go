package googlegen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()
	err := &ValidationError{
		Platform: PlatformGenerativeLanguage,
		Family:   FamilyGenerateContent,
		Detail:   "contents[2].parts[0]",
		Err:      ErrUnsupportedPart,
	}
	assert.Contains(t, err.Error(), "googlegen:")
	assert.Contains(t, err.Error(), "contents[2].parts[0]")
	assert.Contains(t, err.Error(), string(PlatformGenerativeLanguage))
}

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Platform: PlatformVertexAI, Err: ErrMissingCredentials}
	require.ErrorIs(t, err, ErrMissingCredentials)
	unwrapped := errors.Unwrap(err)
	require.Error(t, unwrapped)
	assert.ErrorIs(t, unwrapped, ErrMissingCredentials)
}

func TestParseError_CarriesRaw(t *testing.T) {
	t.Parallel()
	raw := json.RawMessage(`{"bad": true}`)
	err := &ParseError{Family: FamilyGenerateContent, Raw: raw, Err: ErrMissingContent}
	assert.Contains(t, err.Error(), "googlegen:")
	require.ErrorIs(t, err, ErrMissingContent)

	var perr *ParseError
	wrapped := error(err)
	require.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, raw, perr.Raw)
}
