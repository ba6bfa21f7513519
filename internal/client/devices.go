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

// timeFormat is the wire format for time-window query parameters.
const timeFormat = "2006-01-02T15:04:05Z07:00"

// DevicesClient implements ioconnect.DevicesClient.
type DevicesClient struct {
	httpClient *http.Client
}

// NewDevicesClient creates a new devices client.
func NewDevicesClient(httpClient *http.Client) *DevicesClient {
	return &DevicesClient{
		httpClient: httpClient,
	}
}

// Get implements ioconnect.DevicesClient.Get.
func (c *DevicesClient) Get(ctx context.Context, deviceID string) (*ioconnect.Device, error) {
	if deviceID == "" {
		return nil, ioconnect.ErrDeviceIDRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.DeviceDetailsURL, map[string]string{"devID": deviceID}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}

	var device ioconnect.Device

	err = json.Unmarshal(resp.Body, &device)
	if err != nil {
		return nil, fmt.Errorf("parsing device: %w", err)
	}

	return &device, nil
}

// List implements ioconnect.DevicesClient.List.
func (c *DevicesClient) List(ctx context.Context) ([]ioconnect.Device, error) {
	resp, err := c.httpClient.Get(ctx, constants.AllDevicesURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	var devices []ioconnect.Device

	err = json.Unmarshal(resp.Body, &devices)
	if err != nil {
		return nil, fmt.Errorf("parsing devices list: %w", err)
	}

	return devices, nil
}

// ListPaginated implements ioconnect.DevicesClient.ListPaginated.
func (c *DevicesClient) ListPaginated(ctx context.Context, page *ioconnect.PageRequest) (*ioconnect.DeviceList, error) {
	query := url.Values{}

	if page != nil {
		if page.Page > 0 {
			query.Set("page", strconv.Itoa(page.Page))
		}

		if page.Limit > 0 {
			query.Set("limit", strconv.Itoa(page.Limit))
		}
	}

	resp, err := c.httpClient.Get(ctx, constants.DevicesPaginatedURL, nil, query)
	if err != nil {
		return nil, fmt.Errorf("listing devices page: %w", err)
	}

	var list ioconnect.DeviceList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing devices page: %w", err)
	}

	return &list, nil
}

// GetData implements ioconnect.DevicesClient.GetData.
func (c *DevicesClient) GetData(ctx context.Context, dataQuery *ioconnect.DataQuery) (*ioconnect.DataQueryResult, error) {
	if dataQuery == nil || dataQuery.DeviceID == "" {
		return nil, ioconnect.ErrDeviceIDRequired
	}

	query := url.Values{}

	for _, sensor := range dataQuery.Sensors {
		query.Add("sensor", sensor)
	}

	if !dataQuery.Start.IsZero() {
		query.Set("sTime", dataQuery.Start.Format(timeFormat))
	}

	if !dataQuery.End.IsZero() {
		query.Set("eTime", dataQuery.End.Format(timeFormat))
	}

	if dataQuery.Limit > 0 {
		query.Set("limit", strconv.Itoa(dataQuery.Limit))
	}

	if dataQuery.Cursor != "" {
		query.Set("cursor", dataQuery.Cursor)
	}

	resp, err := c.httpClient.Get(ctx, constants.DeviceDataURL,
		map[string]string{"devID": dataQuery.DeviceID}, query)
	if err != nil {
		return nil, fmt.Errorf("getting device data: %w", err)
	}

	var result ioconnect.DataQueryResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing device data: %w", err)
	}

	return &result, nil
}

// GetLatestPoint implements ioconnect.DevicesClient.GetLatestPoint.
func (c *DevicesClient) GetLatestPoint(ctx context.Context, deviceID, sensor string) (*ioconnect.DataPoint, error) {
	if deviceID == "" {
		return nil, ioconnect.ErrDeviceIDRequired
	}

	if sensor == "" {
		return nil, ioconnect.ErrSensorNameRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.LatestDataPointURL,
		map[string]string{"devID": deviceID, "sensor": sensor}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting latest data point: %w", err)
	}

	var point ioconnect.DataPoint

	err = json.Unmarshal(resp.Body, &point)
	if err != nil {
		return nil, fmt.Errorf("parsing latest data point: %w", err)
	}

	return &point, nil
}
