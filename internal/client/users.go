package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"github.com/Faclon-Labs/connector-go/internal/http"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

// UsersClient implements ioconnect.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// GetDetails implements ioconnect.UsersClient.GetDetails.
func (c *UsersClient) GetDetails(ctx context.Context) (*ioconnect.UserDetails, error) {
	resp, err := c.httpClient.Get(ctx, constants.UserDetailsURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user details: %w", err)
	}

	var details ioconnect.UserDetails

	err = json.Unmarshal(resp.Body, &details)
	if err != nil {
		return nil, fmt.Errorf("parsing user details: %w", err)
	}

	return &details, nil
}

// GetQuota implements ioconnect.UsersClient.GetQuota.
func (c *UsersClient) GetQuota(ctx context.Context) (*ioconnect.UserQuota, error) {
	resp, err := c.httpClient.Get(ctx, constants.UserQuotaURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user quota: %w", err)
	}

	var quota ioconnect.UserQuota

	err = json.Unmarshal(resp.Body, &quota)
	if err != nil {
		return nil, fmt.Errorf("parsing user quota: %w", err)
	}

	return &quota, nil
}

// UpdateProfile implements ioconnect.UsersClient.UpdateProfile.
func (c *UsersClient) UpdateProfile(ctx context.Context, request *ioconnect.UserProfileUpdateRequest) (*ioconnect.UserDetails, error) {
	resp, err := c.httpClient.Put(ctx, constants.UserProfileURL, nil, request)
	if err != nil {
		return nil, fmt.Errorf("updating user profile: %w", err)
	}

	var details ioconnect.UserDetails

	err = json.Unmarshal(resp.Body, &details)
	if err != nil {
		return nil, fmt.Errorf("parsing user profile response: %w", err)
	}

	return &details, nil
}
