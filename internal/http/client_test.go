package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

// recordSleeps returns a sleep hook that records requested delays without
// actually sleeping.
func recordSleeps(delays *[]time.Duration) Option {
	return withSleep(func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)

		return ctx.Err()
	})
}

func serverHost(t *testing.T, server *httptest.Server) string {
	t.Helper()

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	return parsed.Host
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/metaData/user", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"email": "ops@example.com"})
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "test-token", WithOnPrem(true))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/api/metaData/user", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", result["email"])
	})

	t.Run("request with path params and query", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/metaData/device/dev-1", request.URL.Path)
			assert.Equal(t, "limit=10", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "", WithOnPrem(true))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/api/metaData/device/{devID}",
			map[string]string{"devID": "dev-1"}, url.Values{"limit": []string{"10"}})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "pressure", body["search"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "", WithOnPrem(true))

		resp, err := client.Post(context.Background(), "{protocol}://{backend_url}/api/insights/fetch",
			nil, map[string]string{"search": "pressure"})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("custom headers override defaults", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "token override", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "ignored", WithOnPrem(true))

		resp, err := client.Do(context.Background(), &Request{
			Method:   "GET",
			Template: "{protocol}://{backend_url}/test",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
				"Authorization":   "token override",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("empty header value drops the header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, ok := request.Header["Authorization"]
			assert.False(t, ok)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "secret", WithOnPrem(true))

		_, err := client.Do(context.Background(), &Request{
			Method:   "GET",
			Template: "{protocol}://{backend_url}/test",
			Headers:  map[string]string{"Authorization": ""},
		})
		require.NoError(t, err)
	})

	t.Run("missing substitution fails before any dispatch", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "", WithOnPrem(true))

		_, err := client.Get(context.Background(), "{protocol}://{backend_url}/device/{devID}", nil, nil)
		require.ErrorIs(t, err, ioconnect.ErrMissingSubstitution)
		assert.Equal(t, int32(0), attempts.Load())
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := NewClient(serverHost(t, server), "", WithOnPrem(true), WithLogger(logger), WithDebug(true))

		_, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries transient 5xx then succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]bool{"ok": true})
		}))
		defer server.Close()

		var delays []time.Duration

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(3, 1*time.Second, 2*time.Second), recordSleeps(&delays))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
		assert.Equal(t, int32(3), attempts.Load())
		// delay(1)=1s, delay(2)=min(2s, cap)=2s
		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
	})

	t.Run("4xx statuses are retried like 5xx", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		var delays []time.Duration

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(3, 10*time.Millisecond, 40*time.Millisecond), recordSleeps(&delays))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("undecodable 2xx body is retried", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				_, _ = writer.Write([]byte("<html>not json</html>"))

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]string{"ok": "yes"})
		}))
		defer server.Close()

		var delays []time.Duration

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(3, time.Millisecond, time.Millisecond), recordSleeps(&delays))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(2), attempts.Load())
		assert.JSONEq(t, `{"ok":"yes"}`, string(resp.Body))
	})

	t.Run("exhausts budget and surfaces last error", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.Header().Set("Server", "backend/1.2")
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error":"device not found"}`))
		}))
		defer server.Close()

		var delays []time.Duration

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(4, time.Second, 2*time.Second), recordSleeps(&delays))

		resp, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.Error(t, err)
		assert.Equal(t, int32(4), attempts.Load())
		assert.Len(t, delays, 3)

		require.True(t, ioconnect.IsRetriesExhausted(err))
		assert.Equal(t, 404, ioconnect.StatusCode(err))
		assert.Contains(t, err.Error(), "after 4 attempts")
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "device not found")
		assert.Contains(t, err.Error(), "backend/1.2")

		// The last response is still returned for diagnostics.
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)

		statusErr := &ioconnect.StatusError{}
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
	})

	t.Run("backoff saturates at the cap", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		var delays []time.Duration

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(5, 2*time.Second, 4*time.Second), recordSleeps(&delays))

		_, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.Error(t, err)
		assert.Equal(t, []time.Duration{
			2 * time.Second,
			4 * time.Second,
			4 * time.Second,
			4 * time.Second,
		}, delays)
	})

	t.Run("cancellation skips remaining retries", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())

		client := NewClient(serverHost(t, server), "", WithOnPrem(true),
			WithRetryConfig(10, time.Second, time.Second),
			withSleep(func(ctx context.Context, d time.Duration) error {
				cancel()

				return ctx.Err()
			}))

		_, err := client.Get(ctx, "{protocol}://{backend_url}/test", nil, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("network failure is wrapped on exhaustion", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration

		// Nothing listens on this address.
		client := NewClient("127.0.0.1:1", "", WithOnPrem(true),
			WithRetryConfig(2, time.Millisecond, time.Millisecond), recordSleeps(&delays))

		_, err := client.Get(context.Background(), "{protocol}://{backend_url}/test", nil, nil)
		require.Error(t, err)
		require.True(t, ioconnect.IsRetriesExhausted(err))
		assert.Equal(t, 0, ioconnect.StatusCode(err))
		assert.Len(t, delays, 1)
	})
}

func TestClient_DoOnce(t *testing.T) {
	t.Parallel()
	t.Run("never retries", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"bad credentials"}`))
		}))
		defer server.Close()

		client := NewClient(serverHost(t, server), "", WithOnPrem(true))

		_, err := client.DoOnce(context.Background(), &Request{
			Method:   "POST",
			Template: "{protocol}://{backend_url}/api/account/login",
			Body:     map[string]string{"username": "u", "password": "p"},
			Headers:  map[string]string{"Authorization": ""},
		})
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
		assert.False(t, ioconnect.IsRetriesExhausted(err))
		assert.True(t, ioconnect.IsStatus(err, 401))
	})
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "first retry uses the base delay", attempt: 1, expected: 2 * time.Second},
		{name: "second retry reaches the cap", attempt: 2, expected: 4 * time.Second},
		{name: "third retry stays at the cap", attempt: 3, expected: 4 * time.Second},
		{name: "tenth retry stays at the cap", attempt: 10, expected: 4 * time.Second},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, backoff(2*time.Second, 4*time.Second, testCase.attempt))
		})
	}
}
