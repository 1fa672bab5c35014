package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the scanner
type Config struct {
	// Instagram session and transport settings
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Scan settings
	Scan ScanConfig `yaml:"scan" json:"scan"`

	// Presence probe settings
	Probe ProbeConfig `yaml:"probe" json:"probe"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Rate limiting configuration for provider requests
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds Instagram-specific configuration
type InstagramConfig struct {
	SessionID string `yaml:"session_id" json:"session_id"`
	CSRFToken string `yaml:"csrf_token" json:"csrf_token"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	// Proxy is threaded into the HTTP client construction explicitly,
	// it never mutates process environment.
	Proxy   string        `yaml:"proxy" json:"proxy"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ScanConfig bounds the aggregation window
type ScanConfig struct {
	MaxPosts int  `yaml:"max_posts" json:"max_posts"`
	Verbose  bool `yaml:"verbose" json:"verbose"`
}

// ProbeConfig holds presence-probe configuration
type ProbeConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	Concurrency int           `yaml:"concurrency" json:"concurrency"`
	// Platforms are URL templates with a single %s for the handle.
	Platforms []string `yaml:"platforms" json:"platforms"`
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`
	Directory string `yaml:"directory" json:"directory"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay" json:"retry_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultPlatforms are the external platforms probed for the target
// handle when external search is enabled.
var DefaultPlatforms = []string{
	"https://twitter.com/%s",
	"https://www.facebook.com/%s",
	"https://www.tiktok.com/@%s",
	"https://www.reddit.com/user/%s",
	"https://www.linkedin.com/in/%s",
	"https://github.com/%s",
	"https://www.youtube.com/user/%s",
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Timeout:   30 * time.Second,
		},
		Scan: ScanConfig{
			MaxPosts: 50,
		},
		Probe: ProbeConfig{
			Enabled:     false,
			Timeout:     10 * time.Second,
			Concurrency: 5,
			Platforms:   append([]string(nil), DefaultPlatforms...),
		},
		Output: OutputConfig{
			Format:    "text",
			Directory: "results",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			MaxRetries:        3,
			RetryDelay:        5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if sessionID := os.Getenv("INSTASCAN_SESSION_ID"); sessionID != "" {
		c.Instagram.SessionID = sessionID
	}
	if csrfToken := os.Getenv("INSTASCAN_CSRF_TOKEN"); csrfToken != "" {
		c.Instagram.CSRFToken = csrfToken
	}
	if userAgent := os.Getenv("INSTASCAN_USER_AGENT"); userAgent != "" {
		c.Instagram.UserAgent = userAgent
	}
	if proxy := os.Getenv("INSTASCAN_PROXY"); proxy != "" {
		c.Instagram.Proxy = proxy
	}

	if maxPosts := os.Getenv("INSTASCAN_MAX_POSTS"); maxPosts != "" {
		var val int
		fmt.Sscanf(maxPosts, "%d", &val)
		if val > 0 {
			c.Scan.MaxPosts = val
		}
	}

	if format := os.Getenv("INSTASCAN_OUTPUT_FORMAT"); format != "" {
		c.Output.Format = format
	}
	if outputDir := os.Getenv("INSTASCAN_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}

	if rpm := os.Getenv("INSTASCAN_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}

	if logLevel := os.Getenv("INSTASCAN_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".instascan.yaml",
		".instascan.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "instascan", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "instascan", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".instascan.yaml"),
		filepath.Join(os.Getenv("HOME"), ".instascan.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	validFormats := map[string]bool{
		"json": true, "csv": true, "text": true,
	}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Errorf("invalid output format %q (json, csv or text)", c.Output.Format))
	}
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	if c.Scan.MaxPosts <= 0 {
		errs = append(errs, errors.New("max posts must be positive"))
	}

	if c.Probe.Timeout <= 0 {
		errs = append(errs, errors.New("probe timeout must be positive"))
	}
	if c.Probe.Concurrency <= 0 {
		errs = append(errs, errors.New("probe concurrency must be positive"))
	}
	if c.Probe.Concurrency > 10 {
		errs = append(errs, errors.New("probe concurrency should not exceed 10"))
	}
	for _, tpl := range c.Probe.Platforms {
		if !strings.Contains(tpl, "%s") {
			errs = append(errs, fmt.Errorf("platform template %q has no handle placeholder", tpl))
		}
	}

	if c.Instagram.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if sessionID, ok := flags["session-id"].(string); ok && sessionID != "" {
		c.Instagram.SessionID = sessionID
	}
	if csrfToken, ok := flags["csrf-token"].(string); ok && csrfToken != "" {
		c.Instagram.CSRFToken = csrfToken
	}
	if proxy, ok := flags["proxy"].(string); ok && proxy != "" {
		c.Instagram.Proxy = proxy
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Output.Format = format
	}
	if outputDir, ok := flags["output-dir"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if maxPosts, ok := flags["max-posts"].(int); ok && maxPosts > 0 {
		c.Scan.MaxPosts = maxPosts
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Probe.Timeout = timeout
	}
	if external, ok := flags["external-search"].(bool); ok {
		c.Probe.Enabled = external
	}
	if verbose, ok := flags["verbose"].(bool); ok {
		c.Scan.Verbose = verbose
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".instascan.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
