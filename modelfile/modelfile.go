// Package modelfile loads client configuration (connection plus
// client-level model parameters) from a YAML document, so deployments can
// ship backend settings next to their prompts instead of in code.
package modelfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/googlegen"
	"github.com/skosovsky/googlegen/internal/cast"
)

// ErrInvalidModelFile is returned when the YAML document is malformed or
// missing a required field. Callers should use errors.Is.
var ErrInvalidModelFile = errors.New("modelfile: model file is malformed")

// fileModel is the YAML shape bound directly to domain types.
type fileModel struct {
	Platform    string         `yaml:"platform"`
	Model       string         `yaml:"model"`
	Family      string         `yaml:"family"`
	Endpoint    string         `yaml:"endpoint"`
	Location    string         `yaml:"location"`
	APIVersion  string         `yaml:"api_version"`
	Project     string         `yaml:"project"`
	APIKey      string         `yaml:"api_key"`
	Credentials string         `yaml:"credentials"`
	ModelConfig map[string]any `yaml:"model_config"`
	Safety      []struct {
		Category  string `yaml:"category"`
		Threshold string `yaml:"threshold"`
	} `yaml:"safety"`
}

// ParseBytes parses a YAML model file into a connection config and
// client-level model params.
func ParseBytes(data []byte) (googlegen.ConnectionConfig, googlegen.ModelParams, error) {
	var m fileModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, fmt.Errorf("%w: %w", ErrInvalidModelFile, err)
	}
	return build(&m)
}

// ParseFile reads and parses a model file from disk.
func ParseFile(path string) (googlegen.ConnectionConfig, googlegen.ModelParams, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is validated by caller
	if err != nil {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, fmt.Errorf("modelfile: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a model file from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) (googlegen.ConnectionConfig, googlegen.ModelParams, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, fmt.Errorf("modelfile: read fs: %w", err)
	}
	return ParseBytes(data)
}

func build(m *fileModel) (googlegen.ConnectionConfig, googlegen.ModelParams, error) {
	if m.Model == "" {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, fmt.Errorf("%w: missing model", ErrInvalidModelFile)
	}
	platform, err := parsePlatform(m.Platform)
	if err != nil {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, err
	}
	family, err := parseFamily(m.Family)
	if err != nil {
		return googlegen.ConnectionConfig{}, googlegen.ModelParams{}, err
	}

	conn := googlegen.ConnectionConfig{
		Platform:    platform,
		Endpoint:    m.Endpoint,
		Location:    m.Location,
		APIVersion:  m.APIVersion,
		Project:     m.Project,
		APIKey:      m.APIKey,
		Credentials: m.Credentials,
	}
	params := googlegen.ModelParams{
		Model:  m.Model,
		Family: family,
	}
	applyModelConfig(&params, m.ModelConfig)
	for _, s := range m.Safety {
		params.SafetySettings = append(params.SafetySettings, googlegen.SafetySetting{
			Category:  s.Category,
			Threshold: s.Threshold,
		})
	}
	return conn, params, nil
}

func parsePlatform(s string) (googlegen.Platform, error) {
	switch googlegen.Platform(s) {
	case googlegen.PlatformGenerativeLanguage, googlegen.PlatformVertexAI:
		return googlegen.Platform(s), nil
	default:
		return "", fmt.Errorf("%w: unknown platform %q", ErrInvalidModelFile, s)
	}
}

// parseFamily maps the optional family field; empty selects the structured
// default, matching googlegen's zero-value behavior.
func parseFamily(s string) (googlegen.Family, error) {
	switch googlegen.Family(s) {
	case "", googlegen.FamilyGenerateContent, googlegen.FamilyGenerateText:
		return googlegen.Family(s), nil
	default:
		return "", fmt.Errorf("%w: unknown family %q", ErrInvalidModelFile, s)
	}
}

// applyModelConfig reads well-known sampling keys from the model_config
// map. Well-known keys: "temperature" (float), "top_p" (float), "top_k"
// (int), "max_output_tokens" (int), "stop" ([]string). Unknown keys are
// ignored.
func applyModelConfig(params *googlegen.ModelParams, cfg map[string]any) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["temperature"]; ok {
		if f, ok := cast.ToFloat64(v); ok {
			params.Temperature = &f
		}
	}
	if v, ok := cfg["top_p"]; ok {
		if f, ok := cast.ToFloat64(v); ok {
			params.TopP = &f
		}
	}
	if v, ok := cfg["top_k"]; ok {
		if i, ok := cast.ToInt64(v); ok {
			k := int(i)
			params.TopK = &k
		}
	}
	if v, ok := cfg["max_output_tokens"]; ok {
		if i, ok := cast.ToInt64(v); ok {
			n := int(i)
			params.MaxOutputTokens = &n
		}
	}
	if v, ok := cfg["stop"]; ok {
		if ss, ok := cast.ToStringSlice(v); ok {
			params.StopSequences = ss
		}
	}
}
