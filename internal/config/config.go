// Package config loads and validates the CLI configuration from a YAML file,
// merging defaults, file values and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/apiflow/internal/logger"
	http_transport "github.com/oshokin/apiflow/internal/transport/http"
)

// Config holds all configuration settings.
type Config struct {
	// AuthToken is the bearer token attached to authenticated calls.
	AuthToken string `mapstructure:"auth_token"`
	// BaseURL is prepended to relative call URLs. Optional.
	BaseURL string `mapstructure:"base_url"`
	// Method is the default HTTP method for dispatched calls.
	Method string `mapstructure:"method"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// RequestTimeout bounds each HTTP call (e.g. "30s", "2m").
	RequestTimeout string `mapstructure:"request_timeout"`
	// MaxLogLength caps request/response dumps in debug logs (e.g. "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// RequestBody is the raw JSON payload supplied via flag (not persisted).
	RequestBody string
	// RequestHeaders are extra "Name: value" headers supplied via flag (not persisted).
	RequestHeaders []string
	// Unauthenticated disables Bearer-header attachment (not persisted).
	Unauthenticated bool
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedMaxLogLength is the parsed log dump cap in bytes.
	ParsedMaxLogLength uint64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".apiflow.yaml"

	// DefaultMethod is the default HTTP method for dispatched calls.
	DefaultMethod = "GET"

	// DefaultLogLevel is the default logging verbosity.
	DefaultLogLevel = "info"

	// DefaultRequestTimeout is the default per-call timeout.
	DefaultRequestTimeout = "60s"

	// configFilePermissions is the file mode for a freshly written config file.
	configFilePermissions = 0o600
)

// Static error definitions for better error handling.
var (
	// ErrEmptyMethod indicates that the HTTP method is missing.
	ErrEmptyMethod = errors.New("method cannot be empty")
	// ErrInvalidBaseURL indicates that the base URL is not an absolute HTTP(S) URL.
	ErrInvalidBaseURL = errors.New("base_url must be an absolute http(s) URL")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrRelativeURLWithoutBase indicates a relative call URL with no base_url configured.
	ErrRelativeURLWithoutBase = errors.New("relative URL requires base_url to be configured")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing default file is tolerated; a file named explicitly must exist.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	viper.SetDefault("method", DefaultMethod)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("request_timeout", DefaultRequestTimeout)

	if err := viper.ReadInConfig(); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	var err error

	if strings.TrimSpace(cfg.Method) == "" {
		return ErrEmptyMethod
	}

	cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))

	if cfg.BaseURL != "" {
		parsed, parseErr := url.Parse(cfg.BaseURL)
		if parseErr != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, cfg.BaseURL)
		}
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" || maxLogLength == "0" {
		cfg.ParsedMaxLogLength = http_transport.DefaultMaxLogLength

		return nil
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	return nil
}

// ResolveURL resolves a call URL against the configured base URL.
// Absolute URLs are returned unchanged; relative ones require base_url.
func (cfg *Config) ResolveURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL '%s': %w", rawURL, err)
	}

	if parsed.IsAbs() {
		return rawURL, nil
	}

	if cfg.BaseURL == "" {
		return "", fmt.Errorf("%w: '%s'", ErrRelativeURLWithoutBase, rawURL)
	}

	return url.JoinPath(cfg.BaseURL, rawURL)
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.AuthToken, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	updateAuthTokenInNode(&node, cfg.AuthToken)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, configFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, authToken string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content, marshalErr := yaml.Marshal(map[string]string{
		"auth_token":      authToken,
		"method":          DefaultMethod,
		"log_level":       DefaultLogLevel,
		"request_timeout": DefaultRequestTimeout,
	})
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal config: %w", marshalErr)
	}

	if writeErr := os.WriteFile(configFile, content, configFilePermissions); writeErr != nil {
		return fmt.Errorf("failed to create config file: %w", writeErr)
	}

	return nil
}

// updateAuthTokenInNode updates the auth_token value inside a parsed YAML document,
// adding the key when it is absent.
func updateAuthTokenInNode(node *yaml.Node, authToken string) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "auth_token" {
			node.Content[i+1].SetString(authToken)

			return
		}
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: "auth_token"}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode}
	valueNode.SetString(authToken)

	node.Content = append(node.Content, keyNode, valueNode)
}
