package googlegen

import "fmt"

// partKind discriminates Part variants for policy lookups.
type partKind string

const (
	kindText             partKind = "text"
	kindBlob             partKind = "inline data"
	kindFileData         partKind = "file data"
	kindFunctionCall     partKind = "function call"
	kindFunctionResponse partKind = "function response"
)

func kindOf(p Part) partKind {
	switch p.(type) {
	case TextPart:
		return kindText
	case BlobPart:
		return kindBlob
	case FileDataPart:
		return kindFileData
	case FunctionCallPart:
		return kindFunctionCall
	case FunctionResponsePart:
		return kindFunctionResponse
	default:
		// Unreachable while Part stays sealed.
		return partKind(fmt.Sprintf("%T", p))
	}
}

// platformSet restricts a part kind to specific platforms. nil means any.
type platformSet map[Platform]bool

var anyPlatform platformSet

// partPolicy is the capability table: which part kinds each family accepts,
// and on which platforms. A kind absent from a family's row is rejected for
// that family regardless of platform.
var partPolicy = map[Family]map[partKind]platformSet{
	FamilyGenerateContent: {
		kindText:             anyPlatform,
		kindBlob:             anyPlatform,
		kindFileData:         {PlatformVertexAI: true},
		kindFunctionCall:     anyPlatform,
		kindFunctionResponse: anyPlatform,
	},
	FamilyGenerateText: {
		kindText: anyPlatform,
	},
}

// allowPart reports whether the platform/family combination accepts the part.
func allowPart(platform Platform, family Family, p Part) bool {
	row, ok := partPolicy[family.orDefault()]
	if !ok {
		return false
	}
	set, ok := row[kindOf(p)]
	if !ok {
		return false
	}
	return set == nil || set[platform]
}

// roleRequired reports whether the family demands a role on every turn.
var roleRequired = map[Family]bool{
	FamilyGenerateContent: true,
}

// validRoles are the roles the backends accept on conversation turns.
var validRoles = map[Role]bool{
	RoleUser:  true,
	RoleModel: true,
}
