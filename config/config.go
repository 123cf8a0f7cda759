// Package config holds the settings of the snippet builder.
//
// The defaults reproduce the builder's fixed behavior; a TOML file and
// APISNIPPET_* environment variables may override them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/apisnippet/openapi"
	"github.com/randalmurphal/apisnippet/tokens"
)

// ErrInvalidConfig indicates a setting failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// Default locations of the dereferenced source and the snippet.
const (
	DefaultInput  = "/workspace/rest-api-description/descriptions/api.github.com/dereferenced/api.github.com.deref.yaml"
	DefaultOutput = "/workspace/context1.txt"
)

// DefaultPreferredTags favors access-control, collaboration and
// organization endpoints.
var DefaultPreferredTags = []string{
	"orgs", "teams", "repos", "collaborators", "members", "actions", "codespaces",
	"enterprise-admin", "apps", "users", "scim", "pulls", "issues", "projects",
	"migrations", "dependabot", "secret-scanning", "code-scanning", "copilot",
	"packages", "hooks", "webhooks", "interactions", "branch-protection",
	"environments", "deployments", "repository-invitations", "billing", "audit-log",
	"admin",
}

// Config holds the snippet builder settings.
type Config struct {
	// --- Files ---

	// Input is the dereferenced OpenAPI YAML document.
	Input string `toml:"input" json:"input" jsonschema:"description=Dereferenced OpenAPI YAML source"`

	// Output is where the snippet is written. Parent directories are created.
	Output string `toml:"output" json:"output" jsonschema:"description=Snippet destination; overwritten"`

	// --- Budget ---

	// TokenLimit is the inclusive token budget for the snippet.
	TokenLimit int `toml:"token_limit" json:"token_limit" jsonschema:"minimum=1,default=200000"`

	// Encoding names the tiktoken encoding, or "estimate".
	Encoding string `toml:"encoding" json:"encoding" jsonschema:"default=cl100k_base"`

	// Model derives the encoding from a model name. Overrides Encoding.
	Model string `toml:"model,omitempty" json:"model,omitempty"`

	// --- Selection ---

	// PreferredTags are tried first, in this order.
	PreferredTags []string `toml:"preferred_tags" json:"preferred_tags"`

	// HTTPMethods are the path item keys treated as operations.
	HTTPMethods []string `toml:"http_methods" json:"http_methods" jsonschema:"minItems=1"`

	// UntaggedTag names the synthetic tag for untagged operations.
	UntaggedTag string `toml:"untagged_tag" json:"untagged_tag" jsonschema:"default=__untagged__"`

	// FallbackEstimate is the size used when an operation fails to
	// serialize during indexing.
	FallbackEstimate int `toml:"fallback_estimate" json:"fallback_estimate" jsonschema:"minimum=1,default=1000"`

	// --- Logging ---

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Input:            DefaultInput,
		Output:           DefaultOutput,
		TokenLimit:       tokens.DefaultLimit,
		Encoding:         tokens.DefaultEncoding,
		PreferredTags:    append([]string(nil), DefaultPreferredTags...),
		HTTPMethods:      append([]string(nil), openapi.DefaultMethods...),
		UntaggedTag:      openapi.UntaggedTag,
		FallbackEstimate: openapi.DefaultFallbackEstimate,
		LogLevel:         "info",
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path returns the defaults. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: %w: unknown keys %s", path, ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadFromEnv applies APISNIPPET_* environment variables over c.
//
// Supported variables:
//   - APISNIPPET_INPUT: source document
//   - APISNIPPET_OUTPUT: snippet destination
//   - APISNIPPET_TOKEN_LIMIT: token budget
//   - APISNIPPET_ENCODING: tiktoken encoding
//   - APISNIPPET_MODEL: model name to derive the encoding from
//   - APISNIPPET_LOG_LEVEL: log level
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("APISNIPPET_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("APISNIPPET_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("APISNIPPET_TOKEN_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TokenLimit = n
		}
	}
	if v := os.Getenv("APISNIPPET_ENCODING"); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv("APISNIPPET_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("APISNIPPET_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input is required", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalidConfig)
	}
	if c.TokenLimit <= 0 {
		return fmt.Errorf("%w: token_limit must be > 0, got %d", ErrInvalidConfig, c.TokenLimit)
	}
	if len(c.HTTPMethods) == 0 {
		return fmt.Errorf("%w: http_methods must not be empty", ErrInvalidConfig)
	}
	if c.UntaggedTag == "" {
		return fmt.Errorf("%w: untagged_tag is required", ErrInvalidConfig)
	}
	if c.FallbackEstimate <= 0 {
		return fmt.Errorf("%w: fallback_estimate must be > 0, got %d", ErrInvalidConfig, c.FallbackEstimate)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Schema returns the JSON schema of the config file format.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "apisnippet config"
	return json.MarshalIndent(s, "", "  ")
}
