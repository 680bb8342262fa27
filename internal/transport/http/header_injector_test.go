package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/apiflow/internal/utils"
	mock_utils "github.com/oshokin/apiflow/internal/utils/mocks"
)

// TestNewHeaderInjector tests the NewHeaderInjector function.
func TestNewHeaderInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestHeaderInjector_RoundTrip_InjectsMissingHeaders tests that absent headers are injected.
func TestHeaderInjector_RoundTrip_InjectsMissingHeaders(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	injected := http.Header{}
	injected.Set("User-Agent", "TestAgent/1.0")
	injected.Set("X-Client", "apiflow")

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().Headers().Return(injected).Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "apiflow", r.Header.Get("X-Client"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_RoundTrip_KeepsExistingHeaders tests that caller headers win.
func TestHeaderInjector_RoundTrip_KeepsExistingHeaders(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	injected := http.Header{}
	injected.Set("User-Agent", "TestAgent/1.0")

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().Headers().Return(injected).Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_IntegrationWithUserAgentProvider tests integration with the static provider.
func TestHeaderInjector_IntegrationWithUserAgentProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "IntegrationTest/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := utils.NewUserAgentHeaderProvider("IntegrationTest/1.0")
	injector := NewHeaderInjector(http.DefaultTransport, provider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
