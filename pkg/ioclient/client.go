// Package ioclient provides the main entry point for creating platform clients.
package ioclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/Faclon-Labs/connector-go/internal/client"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

// New creates a new platform client from config. The backend host may be given
// as a bare host, host:port, or a full URL; schemes and trailing slashes are
// normalized away, and an http:// scheme implies an on-premise backend.
func New(config *ioconnect.Config) (ioconnect.Client, error) {
	if config == nil {
		return nil, ioconnect.ErrConfigRequired
	}

	if config.BackendHost == "" {
		return nil, ioconnect.ErrBackendHostRequired
	}

	host := strings.TrimSuffix(config.BackendHost, "/")

	switch {
	case strings.HasPrefix(host, "http://"):
		host = strings.TrimPrefix(host, "http://")
		config.OnPrem = true
	case strings.HasPrefix(host, "https://"):
		host = strings.TrimPrefix(host, "https://")
	}

	config.BackendHost = strings.TrimSuffix(host, "/")

	if config.RetryMax < 0 {
		return nil, ioconnect.ErrInvalidRetryConfig
	}

	return client.New(config)
}

// NewWithToken creates a client for host using an existing access token.
func NewWithToken(host, token string) (ioconnect.Client, error) {
	return New(&ioconnect.Config{
		BackendHost: host,
		AccessToken: token,
	})
}

// NewWithLogin creates a client for host by logging in with username and
// password, then rebuilding the client around the returned token.
func NewWithLogin(ctx context.Context, host, username, password string) (ioconnect.Client, error) {
	bootstrap, err := New(&ioconnect.Config{BackendHost: host})
	if err != nil {
		return nil, err
	}

	result, err := bootstrap.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return NewWithToken(host, result.Token)
}
