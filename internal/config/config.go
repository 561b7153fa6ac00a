package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
)

const (
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 8192

	configPath = ".mdplus/config.toml"
	envKeyName = "ANTHROPIC_API_KEY"
)

// Config holds all mdplus configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Rewrite RewriteConfig `toml:"rewrite"`
}

// APIConfig holds AI provider settings.
type APIConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// RewriteConfig holds default values for rewrite requests.
type RewriteConfig struct {
	// MaxTokens bounds the model's response size.
	MaxTokens int `toml:"max_tokens"`
	// StyleGuide is appended to every rewrite prompt, for standing
	// instructions like "keep headings untouched".
	StyleGuide string `toml:"style_guide"`
}

// Load reads config from .mdplus/config.toml relative to the given project
// root, applies defaults, and resolves the API key from the environment if
// not set in the config file.
func Load(projectRoot string) (Config, error) {
	cfg := Config{
		API: APIConfig{
			Model: DefaultModel,
		},
		Rewrite: RewriteConfig{
			MaxTokens: DefaultMaxTokens,
		},
	}

	path := filepath.Join(projectRoot, configPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// No config file, use defaults with env var for API key.
		cfg.API.APIKey = os.Getenv(envKeyName)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, mdperr.WrapConfig("reading config file", err).
			WithHint("check the syntax of " + path)
	}

	// Apply defaults for fields not set in the file.
	if cfg.API.Model == "" {
		cfg.API.Model = DefaultModel
	}
	if cfg.Rewrite.MaxTokens <= 0 {
		cfg.Rewrite.MaxTokens = DefaultMaxTokens
	}

	// Env var overrides config file API key.
	if envKey := os.Getenv(envKeyName); envKey != "" {
		cfg.API.APIKey = envKey
	}

	return cfg, nil
}

// ResolveAPIKey returns the API key from the config, or an error with a
// helpful message if no key is available.
func (c Config) ResolveAPIKey() (string, error) {
	if c.API.APIKey != "" {
		return c.API.APIKey, nil
	}
	return "", mdperr.Config("no API key found: set "+envKeyName+" or add api_key under [api] in "+configPath).
		WithHint("get a key at https://console.anthropic.com/settings/keys")
}
