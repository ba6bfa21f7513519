package client

import (
	"net/http/httptest"
	"net/url"
	"testing"

	internalhttp "github.com/Faclon-Labs/connector-go/internal/http"
	"github.com/stretchr/testify/require"
)

// newTestHTTPClient points an HTTP client at an httptest server with a short
// retry budget so failure tests stay fast.
func newTestHTTPClient(t *testing.T, server *httptest.Server, token string) *internalhttp.Client {
	t.Helper()

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	return internalhttp.NewClient(parsed.Host, token,
		internalhttp.WithOnPrem(true),
		internalhttp.WithRetryConfig(1, 0, 0))
}
