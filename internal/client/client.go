package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	internalhttp "github.com/Faclon-Labs/connector-go/internal/http"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

// Client implements the ioconnect.Client interface. All resource clients
// share one retrying HTTP client; nothing is duplicated per domain area.
type Client struct {
	httpClient *internalhttp.Client
	logger     ioconnect.Logger

	devices  ioconnect.DevicesClient
	users    ioconnect.UsersClient
	insights ioconnect.InsightsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ioconnect.Config) []internalhttp.Option {
	httpOpts := []internalhttp.Option{
		internalhttp.WithOnPrem(config.OnPrem),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Timezone != "" {
		httpOpts = append(httpOpts, internalhttp.WithTimezone(config.Timezone))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(&http.Client{Timeout: config.HTTPTimeout}))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a platform client from config. The backend host is required;
// the access token may be empty for clients that only call Login.
func New(config *ioconnect.Config) (*Client, error) {
	if config.BackendHost == "" {
		return nil, ioconnect.ErrBackendHostRequired
	}

	httpClient := internalhttp.NewClient(config.BackendHost, config.AccessToken, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
	}

	client.devices = NewDevicesClient(httpClient)
	client.users = NewUsersClient(httpClient)
	client.insights = NewInsightsClient(httpClient)

	return client, nil
}

// Devices implements ioconnect.Client.Devices.
func (c *Client) Devices() ioconnect.DevicesClient {
	return c.devices
}

// Users implements ioconnect.Client.Users.
func (c *Client) Users() ioconnect.UsersClient {
	return c.users
}

// Insights implements ioconnect.Client.Insights.
func (c *Client) Insights() ioconnect.InsightsClient {
	return c.insights
}

// Login implements ioconnect.Client.Login. It performs a single POST with no
// retry and no Authorization header; credentials travel only in the body.
func (c *Client) Login(ctx context.Context, username, password string) (*ioconnect.LoginResult, error) {
	if username == "" || password == "" {
		return nil, ioconnect.ErrCredentialsRequired
	}

	resp, err := c.httpClient.DoOnce(ctx, &internalhttp.Request{
		Method:   http.MethodPost,
		Template: constants.LoginURL,
		Body: map[string]string{
			"username": username,
			"password": password,
		},
		// An empty value drops the default bearer header.
		Headers: map[string]string{"Authorization": ""},
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var result ioconnect.LoginResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}

	return &result, nil
}

// loggerAdapter adapts ioconnect.Logger to the HTTP layer's logger.
type loggerAdapter struct {
	logger ioconnect.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
