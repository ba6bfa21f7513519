package http

import (
	"testing"

	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatURL(t *testing.T) {
	t.Parallel()
	t.Run("substitutes protocol, host, and params", func(t *testing.T) {
		t.Parallel()

		got, err := FormatURL("{protocol}://{backend_url}/x/{id}", "api.example.com", false, map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/x/42", got)
	})

	t.Run("on-prem selects http", func(t *testing.T) {
		t.Parallel()

		got, err := FormatURL("{protocol}://{backend_url}/api/metaData/user", "10.0.0.5:8080", true, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:8080/api/metaData/user", got)
	})

	t.Run("percent-encodes reserved characters", func(t *testing.T) {
		t.Parallel()

		got, err := FormatURL("{protocol}://{backend_url}/device/{devID}", "api.example.com", false,
			map[string]string{"devID": "plant a/unit#7"})
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/device/plant%20a%2Funit%237", got)
	})

	t.Run("fails fast on unresolved placeholder", func(t *testing.T) {
		t.Parallel()

		_, err := FormatURL("{protocol}://{backend_url}/device/{devID}", "api.example.com", false, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, ioconnect.ErrMissingSubstitution)
		assert.Contains(t, err.Error(), "devID")
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		template := "{protocol}://{backend_url}/x/{id}"
		params := map[string]string{"id": "a b"}

		first, err := FormatURL(template, "host", false, params)
		require.NoError(t, err)

		second, err := FormatURL(template, "host", false, params)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestBuildHeaders(t *testing.T) {
	t.Parallel()
	t.Run("always carries bearer token", func(t *testing.T) {
		t.Parallel()

		headers := BuildHeaders("secret", nil)
		assert.Equal(t, map[string]string{"Authorization": "Bearer secret"}, headers)
	})

	t.Run("caller override wins", func(t *testing.T) {
		t.Parallel()

		headers := BuildHeaders("secret", map[string]string{"Authorization": "X"})
		assert.Equal(t, "X", headers["Authorization"])
	})

	t.Run("empty value drops the entry", func(t *testing.T) {
		t.Parallel()

		headers := BuildHeaders("secret", map[string]string{"Authorization": ""})
		_, ok := headers["Authorization"]
		assert.False(t, ok)
	})

	t.Run("empty token sends no Authorization", func(t *testing.T) {
		t.Parallel()

		headers := BuildHeaders("", map[string]string{"X-Custom": "v"})
		assert.Equal(t, map[string]string{"X-Custom": "v"}, headers)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		extra := map[string]string{"X-Custom": "v", "Accept": ""}
		assert.Equal(t, BuildHeaders("tok", extra), BuildHeaders("tok", extra))
	})
}
