package googlegen

import "encoding/json"

// Role is the author of one conversation turn.
type Role string

// Conversation roles accepted by the structured content family.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Family selects the backend payload dialect.
type Family string

// Model families. The zero value is treated as FamilyGenerateContent.
const (
	// FamilyGenerateText is the older completion-style dialect: a single
	// flattened text prompt, sampling parameters at the top level.
	FamilyGenerateText Family = "generateText"
	// FamilyGenerateContent is the structured dialect: role-tagged turns
	// of multi-modal parts, sampling parameters under generationConfig.
	FamilyGenerateContent Family = "generateContent"
)

// Part is a sealed interface for one unit of a conversation turn.
// Only package types implement it via isPart(). Exactly one variant is
// populated per part by construction.
type Part interface {
	isPart()
}

// TextPart holds plain text.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// BlobPart holds inline binary data (base64-encoded on the wire).
type BlobPart struct {
	MIMEType string
	Data     []byte
}

func (BlobPart) isPart() {}

// FileDataPart references an uploaded file by URI.
// Accepted only by the Vertex AI platform.
type FileDataPart struct {
	MIMEType string
	FileURI  string
}

func (FileDataPart) isPart() {}

// FunctionCallPart is a model request to call a function.
type FunctionCallPart struct {
	ID   string // Empty when the backend does not assign call IDs.
	Name string
	Args json.RawMessage
}

func (FunctionCallPart) isPart() {}

// FunctionResponsePart carries the result of a function call back to the model.
type FunctionResponsePart struct {
	Name     string
	Response json.RawMessage
}

func (FunctionResponsePart) isPart() {}

// Content is one conversation turn: a role plus an ordered part sequence.
// The structured family requires a role from {RoleUser, RoleModel} and at
// least one part per turn.
type Content struct {
	Role  Role
	Parts []Part
}

// Text returns the concatenated text of all TextParts, ignoring other parts.
func (c Content) Text() string {
	var out string
	for _, p := range c.Parts {
		if t, ok := p.(TextPart); ok {
			out += t.Text
		}
	}
	return out
}

// ToolDeclaration is an opaque tool definition passed through to the backend
// unmodified. The upstream contract for its shape is not pinned down, so no
// structure is imposed here.
type ToolDeclaration = json.RawMessage
