package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/apiflow/action"
	"github.com/oshokin/apiflow/apicall"
)

func TestParseRequestBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           string
		expectedBody  any
		expectedError bool
	}{
		{
			name:         "empty input - no body",
			raw:          "",
			expectedBody: nil,
		},
		{
			name:         "JSON object",
			raw:          `{"name":"smoke","count":2}`,
			expectedBody: map[string]any{"name": "smoke", "count": float64(2)},
		},
		{
			name:         "JSON array",
			raw:          `[1,2,3]`,
			expectedBody: []any{float64(1), float64(2), float64(3)},
		},
		{
			name:          "invalid JSON",
			raw:           `{"name":`,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := parseRequestBody(tt.raw)
			if tt.expectedError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestParseRequestHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		rawHeaders      []string
		expectedOptions *apicall.Options
		expectedError   bool
	}{
		{
			name:            "no headers - no options",
			rawHeaders:      nil,
			expectedOptions: nil,
		},
		{
			name:       "single header",
			rawHeaders: []string{"X-Custom: value"},
			expectedOptions: &apicall.Options{
				Headers: http.Header{"X-Custom": []string{"value"}},
			},
		},
		{
			name:       "repeated header accumulates values",
			rawHeaders: []string{"Accept: application/json", "Accept: text/plain"},
			expectedOptions: &apicall.Options{
				Headers: http.Header{"Accept": []string{"application/json", "text/plain"}},
			},
		},
		{
			name:       "whitespace around name and value is trimmed",
			rawHeaders: []string{"  X-Trimmed  :  spaced value  "},
			expectedOptions: &apicall.Options{
				Headers: http.Header{"X-Trimmed": []string{"spaced value"}},
			},
		},
		{
			name:          "missing colon",
			rawHeaders:    []string{"X-Broken value"},
			expectedError: true,
		},
		{
			name:          "empty name",
			rawHeaders:    []string{": value"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			options, err := parseRequestHeaders(tt.rawHeaders)
			if tt.expectedError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedOptions, options)
		})
	}
}

func TestPrintActions(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer

	dispatch := printActions(&buffer)

	loading := action.NewLoading("API_CALL_LOADING", map[string]any{"request_id": "test"})

	result, err := dispatch(loading)
	require.NoError(t, err)
	assert.Equal(t, loading, result, "the dispatched action must be forwarded untouched")

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	assert.Equal(t, "API_CALL_LOADING", decoded["type"])
	assert.Equal(t, string(action.PhaseLoading), decoded["apiActionType"])
	assert.Equal(t, map[string]any{"request_id": "test"}, decoded["meta"])
}
