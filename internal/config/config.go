// Package config resolves settings for the completion service.
//
// Values are resolved from: flags > env vars > ~/.oops/config.yaml > defaults.
// A .env file in the working directory is loaded first and never overrides
// variables that are already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// --- File paths ---

const (
	oopsDirName    = ".oops"
	configFileName = "config.yaml"
	dotEnvFile     = ".env"

	// HomeEnv overrides ~/.oops for testing.
	HomeEnv = "OOPS_HOME"

	// ProviderEnv and ModelEnv override the file settings.
	ProviderEnv = "OOPS_PROVIDER"
	ModelEnv    = "OOPS_MODEL"
)

var (
	// ErrMissingAPIKey indicates no credential was found for the provider.
	ErrMissingAPIKey = errors.New("API key not set")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Provider names a completion service backend.
type Provider string

// Supported providers.
const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini}

// providerSpec holds per-provider defaults and credential lookup.
type providerSpec struct {
	defaultModel string
	keyEnv       []string // first non-empty wins
	baseURLEnv   string
}

var providerSpecs = map[Provider]providerSpec{
	ProviderAnthropic: {
		defaultModel: "claude-sonnet-4-5",
		keyEnv:       []string{"ANTHROPIC_API_KEY"},
		baseURLEnv:   "ANTHROPIC_BASE_URL",
	},
	ProviderOpenAI: {
		defaultModel: "gpt-4o-mini",
		keyEnv:       []string{"OPENAI_API_KEY"},
		baseURLEnv:   "OPENAI_BASE_URL",
	},
	ProviderGemini: {
		defaultModel: "gemini-2.5-flash",
		keyEnv:       []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	},
}

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := providerSpecs[p]; !ok {
		return "", fmt.Errorf("%w %q (want one of: anthropic, openai, gemini)", ErrUnknownProvider, s)
	}
	return p, nil
}

// KeyEnv returns the primary environment variable holding p's credential.
func (p Provider) KeyEnv() string {
	if spec, ok := providerSpecs[p]; ok {
		return spec.keyEnv[0]
	}
	return ""
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	return providerSpecs[p].defaultModel
}

// --- Defaults ---

const (
	DefaultProvider    = ProviderAnthropic
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.0

	minMaxTokens   = 1
	maxMaxTokens   = 32000
	minTemperature = 0.0
	maxTemperature = 2.0
)

// --- Value Source Tracking ---

// ValueSource indicates where a configuration value originated.
type ValueSource int

// Value sources, lowest precedence first.
const (
	SourceDefault ValueSource = iota // SourceDefault indicates a hardcoded default.
	SourceFile                       // SourceFile indicates ~/.oops/config.yaml.
	SourceEnv                        // SourceEnv indicates an environment variable.
	SourceFlag                       // SourceFlag indicates a command-line flag.
)

// String returns the display name for a value source.
func (s ValueSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "env"
	case SourceFlag:
		return "flag"
	}
	return "unknown"
}

// Value holds a resolved value with its source.
type Value[T any] struct {
	Value  T
	Source ValueSource
}

func (v *Value[T]) set(value T, source ValueSource) {
	v.Value = value
	v.Source = source
}

// --- Structs ---

// File is the on-disk configuration (~/.oops/config.yaml).
// Pointer fields distinguish "unset" from zero.
type File struct {
	Provider    string   `yaml:"provider,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	APIKey      string   `yaml:"api_key,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	MaxTokens   *int     `yaml:"max_tokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	Timeout     string   `yaml:"timeout,omitempty"`
}

// Overrides carries flag values. Zero values mean "not set".
type Overrides struct {
	Provider  string
	Model     string
	MaxTokens int
}

// Config is the merged, resolved configuration.
type Config struct {
	Provider    Value[Provider]
	Model       Value[string]
	APIKey      Value[string]
	BaseURL     Value[string]
	MaxTokens   Value[int]
	Temperature Value[float64]
	Timeout     Value[time.Duration] // 0 means no timeout

	// Path is the config file consulted, whether or not it exists.
	Path string
}

// --- Path helpers ---

// Dir returns the oops directory (~/.oops), or $OOPS_HOME when set.
func Dir() (string, error) {
	if override := os.Getenv(HomeEnv); override != "" {
		return filepath.Clean(override), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, oopsDirName), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// --- Loading ---

// Load reads .env, the config file and the environment, applies flag
// overrides and validates the result.
func Load(o Overrides) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load(dotEnvFile)

	path, err := Path()
	if err != nil {
		return nil, err
	}
	file, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := Resolve(file, os.Getenv, o)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFile parses the YAML config at path. A missing or empty file yields
// an empty File.
func LoadFile(path string) (*File, error) {
	// #nosec G304 - path is derived from user's home directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return &File{}, nil
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// Resolve merges defaults, file, environment and flags, in that order.
// getenv is injected so tests need not touch the process environment.
func Resolve(file *File, getenv func(string) string, o Overrides) (*Config, error) {
	if file == nil {
		file = &File{}
	}

	c := &Config{
		Provider:    Value[Provider]{Value: DefaultProvider},
		MaxTokens:   Value[int]{Value: DefaultMaxTokens},
		Temperature: Value[float64]{Value: DefaultTemperature},
	}

	// Provider first: the remaining defaults and env vars depend on it.
	fileProvider := DefaultProvider
	if file.Provider != "" {
		p, err := ParseProvider(file.Provider)
		if err != nil {
			return nil, err
		}
		fileProvider = p
		c.Provider.set(p, SourceFile)
	}
	if env := getenv(ProviderEnv); env != "" {
		p, err := ParseProvider(env)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ProviderEnv, err)
		}
		c.Provider.set(p, SourceEnv)
	}
	if o.Provider != "" {
		p, err := ParseProvider(o.Provider)
		if err != nil {
			return nil, err
		}
		c.Provider.set(p, SourceFlag)
	}

	provider := c.Provider.Value
	spec := providerSpecs[provider]
	c.Model.set(spec.defaultModel, SourceDefault)

	// Provider-specific file settings only apply to the provider they were
	// written for.
	if fileProvider == provider {
		if file.Model != "" {
			c.Model.set(file.Model, SourceFile)
		}
		if file.APIKey != "" {
			c.APIKey.set(file.APIKey, SourceFile)
		}
		if file.BaseURL != "" {
			c.BaseURL.set(file.BaseURL, SourceFile)
		}
	}
	if file.MaxTokens != nil {
		c.MaxTokens.set(*file.MaxTokens, SourceFile)
	}
	if file.Temperature != nil {
		c.Temperature.set(*file.Temperature, SourceFile)
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		c.Timeout.set(d, SourceFile)
	}

	// Environment
	for _, name := range spec.keyEnv {
		if key := getenv(name); key != "" {
			c.APIKey.set(key, SourceEnv)
			break
		}
	}
	if spec.baseURLEnv != "" {
		if url := getenv(spec.baseURLEnv); url != "" {
			c.BaseURL.set(url, SourceEnv)
		}
	}
	if model := getenv(ModelEnv); model != "" {
		c.Model.set(model, SourceEnv)
	}

	// Flags
	if o.Model != "" {
		c.Model.set(o.Model, SourceFlag)
	}
	if o.MaxTokens != 0 {
		c.MaxTokens.set(o.MaxTokens, SourceFlag)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges of resolved values.
func (c *Config) Validate() error {
	if _, ok := providerSpecs[c.Provider.Value]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownProvider, c.Provider.Value)
	}
	if c.MaxTokens.Value < minMaxTokens || c.MaxTokens.Value > maxMaxTokens {
		return fmt.Errorf("max_tokens must be between %d and %d, got %d", minMaxTokens, maxMaxTokens, c.MaxTokens.Value)
	}
	if c.Temperature.Value < minTemperature || c.Temperature.Value > maxTemperature {
		return fmt.Errorf("temperature must be between %.1f and %.1f, got %g", minTemperature, maxTemperature, c.Temperature.Value)
	}
	if c.Timeout.Value < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout.Value)
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey, naming the variable to set, when
// no credential was resolved.
func (c *Config) RequireAPIKey() error {
	if c.APIKey.Value == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, c.Provider.Value.KeyEnv())
	}
	return nil
}

// --- Saving ---

// Set updates one key in the file at path, creating it if needed.
// Keys use their YAML names.
func Set(path, key, value string) error {
	file, err := LoadFile(path)
	if err != nil {
		return err
	}

	switch key {
	case "provider":
		p, err := ParseProvider(value)
		if err != nil {
			return err
		}
		file.Provider = string(p)
	case "model":
		file.Model = value
	case "api_key":
		file.APIKey = value
	case "base_url":
		file.BaseURL = value
	case "max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_tokens: %w", err)
		}
		file.MaxTokens = &n
	case "temperature":
		t, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature: %w", err)
		}
		file.Temperature = &t
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		file.Timeout = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if _, err := Resolve(file, func(string) string { return "" }, Overrides{}); err != nil {
		return err
	}
	return SaveFile(path, file)
}

// SaveFile writes file as YAML with owner-only permissions.
func SaveFile(path string, file *File) error {
	// #nosec G301 - 0700 is intentionally restrictive
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}

	// #nosec G306 - 0600 is intentionally restrictive
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	return nil
}

// MaskKey hides all but the edges of a credential for display.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return strings.Repeat("*", len(key))
	}
	return key[:7] + "..." + key[len(key)-4:]
}
