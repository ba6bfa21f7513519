package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"github.com/Faclon-Labs/connector-go/internal/http"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
)

// InsightsClient implements ioconnect.InsightsClient.
type InsightsClient struct {
	httpClient *http.Client
}

// NewInsightsClient creates a new insights client.
func NewInsightsClient(httpClient *http.Client) *InsightsClient {
	return &InsightsClient{
		httpClient: httpClient,
	}
}

// FetchUserInsights implements ioconnect.InsightsClient.FetchUserInsights.
// The backend exposes insight fetching as a POST whose body carries the
// filter; the call is a read and safe to retry.
func (c *InsightsClient) FetchUserInsights(ctx context.Context, request *ioconnect.InsightFetchRequest) (*ioconnect.InsightList, error) {
	if request == nil {
		request = &ioconnect.InsightFetchRequest{}
	}

	resp, err := c.httpClient.Post(ctx, constants.UserInsightsURL, nil, request)
	if err != nil {
		return nil, fmt.Errorf("fetching user insights: %w", err)
	}

	var list ioconnect.InsightList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing user insights: %w", err)
	}

	return &list, nil
}

// GetResults implements ioconnect.InsightsClient.GetResults.
func (c *InsightsClient) GetResults(ctx context.Context, insightID string, page *ioconnect.PageRequest) (*ioconnect.InsightResultList, error) {
	if insightID == "" {
		return nil, ioconnect.ErrInsightIDRequired
	}

	query := url.Values{}

	if page != nil {
		if page.Page > 0 {
			query.Set("page", strconv.Itoa(page.Page))
		}

		if page.Limit > 0 {
			query.Set("limit", strconv.Itoa(page.Limit))
		}
	}

	resp, err := c.httpClient.Get(ctx, constants.InsightResultsURL,
		map[string]string{"insightID": insightID}, query)
	if err != nil {
		return nil, fmt.Errorf("getting insight results: %w", err)
	}

	var list ioconnect.InsightResultList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing insight results: %w", err)
	}

	return &list, nil
}

// UpdateInsight implements ioconnect.InsightsClient.UpdateInsight.
func (c *InsightsClient) UpdateInsight(ctx context.Context, insightID string, request *ioconnect.InsightUpdateRequest) (*ioconnect.Insight, error) {
	if insightID == "" {
		return nil, ioconnect.ErrInsightIDRequired
	}

	resp, err := c.httpClient.Put(ctx, constants.InsightURL,
		map[string]string{"insightID": insightID}, request)
	if err != nil {
		return nil, fmt.Errorf("updating insight: %w", err)
	}

	var insight ioconnect.Insight

	err = json.Unmarshal(resp.Body, &insight)
	if err != nil {
		return nil, fmt.Errorf("parsing insight response: %w", err)
	}

	return &insight, nil
}
