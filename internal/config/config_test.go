package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func validConfig() *Config {
	return &Config{
		Method:         "get",
		LogLevel:       "info",
		RequestTimeout: "30s",
	}
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr error
	}{
		{
			name:        "valid config",
			mutate:      func(_ *Config) {},
			expectedErr: nil,
		},
		{
			name: "empty method",
			mutate: func(cfg *Config) {
				cfg.Method = " "
			},
			expectedErr: ErrEmptyMethod,
		},
		{
			name: "invalid base URL",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "not a url at all"
			},
			expectedErr: ErrInvalidBaseURL,
		},
		{
			name: "base URL with unsupported scheme",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "ftp://example.com"
			},
			expectedErr: ErrInvalidBaseURL,
		},
		{
			name: "unknown log level",
			mutate: func(cfg *Config) {
				cfg.LogLevel = "loud"
			},
			expectedErr: ErrUnknownLogLevel,
		},
		{
			name: "negative request timeout",
			mutate: func(cfg *Config) {
				cfg.RequestTimeout = "-5s"
			},
			expectedErr: ErrInvalidRequestTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

// TestValidateConfig_DerivedFields tests that validation fills derived fields.
func TestValidateConfig_DerivedFields(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Method = "post"
	cfg.LogLevel = "debug"
	cfg.MaxLogLength = "2KB"

	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "POST", cfg.Method)
	assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
	assert.Equal(t, uint64(2000), cfg.ParsedMaxLogLength)
	assert.Positive(t, cfg.ParsedRequestTimeout)
}

// TestValidateConfig_DefaultMaxLogLength tests the fallback log dump cap.
func TestValidateConfig_DefaultMaxLogLength(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	require.NoError(t, ValidateConfig(cfg))
	assert.NotZero(t, cfg.ParsedMaxLogLength)
}

// TestConfig_ResolveURL tests the ResolveURL method.
func TestConfig_ResolveURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		baseURL     string
		rawURL      string
		expected    string
		expectedErr error
	}{
		{
			name:     "absolute URL passes through",
			baseURL:  "https://api.example.com",
			rawURL:   "https://other.example.com/v1/items",
			expected: "https://other.example.com/v1/items",
		},
		{
			name:     "relative URL joined with base",
			baseURL:  "https://api.example.com",
			rawURL:   "/v1/items",
			expected: "https://api.example.com/v1/items",
		},
		{
			name:        "relative URL without base",
			baseURL:     "",
			rawURL:      "/v1/items",
			expectedErr: ErrRelativeURLWithoutBase,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			cfg.BaseURL = tt.baseURL

			result, err := cfg.ResolveURL(tt.rawURL)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
