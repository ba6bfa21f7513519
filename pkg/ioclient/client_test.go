package ioclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Faclon-Labs/connector-go/pkg/ioclient"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &ioconnect.Config{
			BackendHost: "datads.iosense.io",
			AccessToken: "test-token",
		}

		client, err := ioclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := ioclient.New(nil)
		require.ErrorIs(t, err, ioconnect.ErrConfigRequired)
	})

	t.Run("requires backend host", func(t *testing.T) {
		t.Parallel()

		_, err := ioclient.New(&ioconnect.Config{AccessToken: "test-token"})
		require.ErrorIs(t, err, ioconnect.ErrBackendHostRequired)
	})

	t.Run("rejects negative retry budget", func(t *testing.T) {
		t.Parallel()

		_, err := ioclient.New(&ioconnect.Config{
			BackendHost: "datads.iosense.io",
			RetryMax:    -1,
		})
		require.ErrorIs(t, err, ioconnect.ErrInvalidRetryConfig)
	})

	t.Run("normalizes https URL to bare host", func(t *testing.T) {
		t.Parallel()

		config := &ioconnect.Config{BackendHost: "https://datads.iosense.io/"}

		_, err := ioclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "datads.iosense.io", config.BackendHost)
		assert.False(t, config.OnPrem)
	})

	t.Run("http URL implies on-prem", func(t *testing.T) {
		t.Parallel()

		config := &ioconnect.Config{BackendHost: "http://10.0.0.5:8080"}

		_, err := ioclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5:8080", config.BackendHost)
		assert.True(t, config.OnPrem)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	client, err := ioclient.NewWithToken("datads.iosense.io", "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewWithLogin(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/account/login":
			assert.Empty(t, request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(ioconnect.LoginResult{Token: "fresh-token", UserID: "u-1"})
		case "/api/metaData/user":
			assert.Equal(t, "Bearer fresh-token", request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(ioconnect.UserDetails{ID: "u-1", Email: "ops@example.com"})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := ioclient.NewWithLogin(context.Background(), "http://"+parsed.Host, "ops@example.com", "hunter2")
	require.NoError(t, err)

	details, err := client.Users().GetDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", details.Email)
}
