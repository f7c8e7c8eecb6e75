package googlegen

import (
	"fmt"
	"net/url"
)

// Platform is the deployment target. It determines the auth mechanism,
// the default endpoint, and which part variants a request may carry.
type Platform string

// Supported platforms.
const (
	// PlatformGenerativeLanguage is the direct platform authenticated with
	// an API key.
	PlatformGenerativeLanguage Platform = "generativelanguage"
	// PlatformVertexAI is the cloud-hosted platform with region, project
	// and credential configuration.
	PlatformVertexAI Platform = "vertexai"
)

// Per-platform defaults applied when ConnectionConfig leaves the
// corresponding field empty.
const (
	DefaultGenerativeLanguageHost       = "generativelanguage.googleapis.com"
	DefaultGenerativeLanguageAPIVersion = "v1beta"
	DefaultVertexAILocation             = "us-central1"
	DefaultVertexAIAPIVersion           = "v1"
)

// ConnectionConfig describes how to reach a backend. The zero value is not
// usable; Platform must be set, and the platform's auth field must be
// populated. Endpoint, Location and APIVersion fall back to platform
// defaults when empty.
type ConnectionConfig struct {
	Platform Platform

	// Endpoint is the backend host (no scheme). When empty, the platform
	// default is used; for Vertex AI that default is derived from Location.
	Endpoint   string
	Location   string // Vertex AI region, e.g. "europe-west1"
	APIVersion string
	Project    string // Vertex AI project ID

	// APIKey authenticates the generative language platform.
	APIKey string
	// Credentials is an opaque credential reference for the Vertex AI
	// platform (e.g. a bearer token or a name resolved by the transport).
	Credentials string
}

// Validate checks that the platform is known and the auth field the
// platform requires is populated. Returns a *ValidationError.
func (c ConnectionConfig) Validate() error {
	switch c.Platform {
	case PlatformGenerativeLanguage:
		if c.APIKey == "" {
			return &ValidationError{Platform: c.Platform, Detail: "api key", Err: ErrMissingAPIKey}
		}
	case PlatformVertexAI:
		if c.Credentials == "" {
			return &ValidationError{Platform: c.Platform, Detail: "credentials", Err: ErrMissingCredentials}
		}
		if c.Project == "" {
			return &ValidationError{Platform: c.Platform, Detail: "project", Err: ErrMissingProject}
		}
	default:
		return &ValidationError{Platform: c.Platform, Err: ErrUnknownPlatform}
	}
	return nil
}

// host resolves the backend host, deriving the Vertex AI regional host from
// Location when Endpoint is empty.
func (c ConnectionConfig) host() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Platform == PlatformVertexAI {
		return c.location() + "-aiplatform.googleapis.com"
	}
	return DefaultGenerativeLanguageHost
}

func (c ConnectionConfig) location() string {
	if c.Location != "" {
		return c.Location
	}
	return DefaultVertexAILocation
}

func (c ConnectionConfig) apiVersion() string {
	if c.APIVersion != "" {
		return c.APIVersion
	}
	if c.Platform == PlatformVertexAI {
		return DefaultVertexAIAPIVersion
	}
	return DefaultGenerativeLanguageAPIVersion
}

// ResolveEndpoint returns the full URL for a model call. stream selects the
// streaming verb where the family has one; the text family streams through
// the same verb as blocking calls.
func (c ConnectionConfig) ResolveEndpoint(model string, family Family, stream bool) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	verb := ""
	switch family.orDefault() {
	case FamilyGenerateContent:
		verb = "generateContent"
		if stream {
			verb = "streamGenerateContent"
		}
	case FamilyGenerateText:
		verb = "generateText"
	default:
		return "", &ValidationError{Platform: c.Platform, Family: family, Err: ErrUnknownFamily}
	}

	var raw string
	switch c.Platform {
	case PlatformGenerativeLanguage:
		raw = fmt.Sprintf("https://%s/%s/models/%s:%s", c.host(), c.apiVersion(), model, verb)
	case PlatformVertexAI:
		raw = fmt.Sprintf("https://%s/%s/projects/%s/locations/%s/publishers/google/models/%s:%s",
			c.host(), c.apiVersion(), c.Project, c.location(), model, verb)
	}
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("googlegen: resolve endpoint: %w", err)
	}
	return raw, nil
}

// orDefault maps the zero Family to the structured dialect.
func (f Family) orDefault() Family {
	if f == "" {
		return FamilyGenerateContent
	}
	return f
}
