package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Defaults used when no config file is present and no flags override them.
const (
	DefaultProvider    = "gemini"
	DefaultModel       = "gemini-1.5-flash"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 100
)

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// apiKeyEnvVars maps each provider to the environment variable consulted
// when no API key is given via flag or config file.
var apiKeyEnvVars = map[string]string{
	"gemini":   "GOOGLE_API_KEY",
	"openai":   "OPENAI_API_KEY",
	"deepseek": "DEEPSEEK_API_KEY",
	"grok":     "XAI_API_KEY",
}

// Config represents the application configuration
type Config struct {
	Provider    string       `yaml:"provider" mapstructure:"provider"`
	Model       string       `yaml:"model" mapstructure:"model"`
	APIKey      string       `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string       `yaml:"base_url" mapstructure:"base_url"`
	Temperature float64      `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int          `yaml:"max_tokens" mapstructure:"max_tokens"`
	Retry       *RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// RetryConfig represents the retry configuration for model calls
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase float64 `yaml:"backoff_base" mapstructure:"backoff_base"` // in seconds
	BackoffMax  float64 `yaml:"backoff_max" mapstructure:"backoff_max"`   // in seconds
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Enabled:     true,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// Validate validates the retry configuration
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("backoff_base must be non-negative")
	}
	if r.BackoffMax < r.BackoffBase {
		return fmt.Errorf("backoff_max must be greater than or equal to backoff_base")
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[c.Provider] {
		return fmt.Errorf("unsupported provider: %s (supported: %s)",
			c.Provider, strings.Join(SupportedProviders(), ", "))
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
	}
	return nil
}

// GetRetryConfig returns the retry configuration with defaults applied
func (c *Config) GetRetryConfig() *RetryConfig {
	if c.Retry == nil {
		return DefaultRetryConfig()
	}
	defaults := DefaultRetryConfig()
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaults.MaxAttempts
	}
	if c.Retry.BackoffBase < 0 {
		c.Retry.BackoffBase = defaults.BackoffBase
	}
	if c.Retry.BackoffMax < 0 {
		c.Retry.BackoffMax = defaults.BackoffMax
	}
	return c.Retry
}

// ResolveAPIKey resolves the API key for the configured provider.
// Priority: explicit value (CLI flag) > config file > provider env variable.
// Ollama runs locally and needs no key; a placeholder is returned.
func (c *Config) ResolveAPIKey(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := expandEnv(c.APIKey); key != "" {
		return key, nil
	}
	if c.Provider == "ollama" {
		return "ollama", nil
	}

	envVar := apiKeyEnvVars[c.Provider]
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key, nil
		}
	}

	return "", fmt.Errorf("API key is required: set %s or use --api-key", envVar)
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envName := s[2 : len(s)-1]
		return os.Getenv(envName)
	}
	// Handle $VAR format
	if strings.HasPrefix(s, "$") {
		envName := s[1:]
		return os.Getenv(envName)
	}
	return s
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max_tokens", DefaultMaxTokens)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided (missing file is an error)
// 2. Current directory .commitgen.yaml
// 3. Home directory ~/.commitgen.yaml
// 4. Built-in defaults when no file exists
func Load(customPath string) (*Config, error) {
	// If custom path is provided, use it exclusively
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	// Try current directory first
	if cfg, err := LoadFromFile(".commitgen.yaml"); err == nil {
		return cfg, nil
	}

	// Try home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		homeCfgPath := filepath.Join(homeDir, ".commitgen.yaml")
		if cfg, err := LoadFromFile(homeCfgPath); err == nil {
			return cfg, nil
		}
	}

	// The tool works without a config file; flags and env supply the rest
	return DefaultConfig(), nil
}
