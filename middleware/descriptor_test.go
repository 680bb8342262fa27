package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/apiflow/action"
)

// TestDescriptor_Validate tests the Validate method.
func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		descriptor  *Descriptor
		expectedErr error
	}{
		{
			name: "valid descriptor",
			descriptor: &Descriptor{
				URL:     "/test",
				Actions: action.NewSet("FETCH"),
			},
			expectedErr: nil,
		},
		{
			name: "missing URL",
			descriptor: &Descriptor{
				Actions: action.NewSet("FETCH"),
			},
			expectedErr: ErrMissingURL,
		},
		{
			name: "missing action set",
			descriptor: &Descriptor{
				URL: "/test",
			},
			expectedErr: ErrMissingActions,
		},
		{
			name: "incomplete action set",
			descriptor: &Descriptor{
				URL: "/test",
				Actions: action.Set{
					Loading: "FETCH_LOADING",
					Success: "FETCH_SUCCESS",
				},
			},
			expectedErr: action.ErrIncompleteSet,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.descriptor.Validate()
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

// TestDescriptor_IsAuthenticated tests the IsAuthenticated method.
func TestDescriptor_IsAuthenticated(t *testing.T) {
	t.Parallel()

	authenticated := true
	unauthenticated := false

	tests := []struct {
		name       string
		descriptor *Descriptor
		expected   bool
	}{
		{
			name:       "nil means authenticated",
			descriptor: &Descriptor{},
			expected:   true,
		},
		{
			name:       "explicit true",
			descriptor: &Descriptor{Authenticated: &authenticated},
			expected:   true,
		},
		{
			name:       "explicit false",
			descriptor: &Descriptor{Authenticated: &unauthenticated},
			expected:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.descriptor.IsAuthenticated())
		})
	}
}

// TestDescriptor_MethodDefault tests the GET defaulting.
func TestDescriptor_MethodDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.MethodGet, (&Descriptor{}).method())
	assert.Equal(t, http.MethodDelete, (&Descriptor{Method: http.MethodDelete}).method())
}
