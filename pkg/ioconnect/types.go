package ioconnect

import "time"

// Device represents a device registered on the platform.
type Device struct {
	ID         string            `json:"devID"                yaml:"devID"`
	Name       string            `json:"devName"              yaml:"devName"`
	Type       string            `json:"devTypeID"            yaml:"devTypeID"`
	TypeName   string            `json:"devTypeName"          yaml:"devTypeName"`
	Sensors    []SensorSpec      `json:"sensors"              yaml:"sensors"`
	Location   *Location         `json:"location,omitempty"   yaml:"location,omitempty"`
	Tags       []string          `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	AddedOn    time.Time         `json:"addedOn"              yaml:"addedOn"`
}

// SensorSpec describes one sensor channel on a device.
type SensorSpec struct {
	ID   string `json:"sensorId"       yaml:"sensorId"`
	Name string `json:"sensorName"     yaml:"sensorName"`
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Location is a device's installed position.
type Location struct {
	Latitude  float64 `json:"latitude"  yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// DataPoint is a single sensor reading.
type DataPoint struct {
	Time   time.Time `json:"time"   yaml:"time"`
	Sensor string    `json:"sensor" yaml:"sensor"`
	Value  float64   `json:"value"  yaml:"value"`
}

// DataQuery describes a device data request.
type DataQuery struct {
	// DeviceID identifies the device; required.
	DeviceID string
	// Sensors limits the query to specific sensor IDs; empty means all.
	Sensors []string
	// Start and End bound the time window. Zero values are omitted and the
	// backend applies its own defaults.
	Start time.Time
	End   time.Time
	// Limit caps the number of points returned; 0 uses the backend default.
	Limit int
	// Cursor resumes a previous query from where it stopped.
	Cursor string
}

// DataQueryResult is one page of sensor data.
type DataQueryResult struct {
	DeviceID string      `json:"devID"            yaml:"devID"`
	Points   []DataPoint `json:"data"             yaml:"data"`
	Cursor   string      `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// UserDetails represents the profile of the account owning the token.
type UserDetails struct {
	ID           string    `json:"_id"                    yaml:"id"`
	Email        string    `json:"email"                  yaml:"email"`
	Name         string    `json:"name"                   yaml:"name"`
	Organisation string    `json:"organisation,omitempty" yaml:"organisation,omitempty"`
	Timezone     string    `json:"timezone,omitempty"     yaml:"timezone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"              yaml:"createdAt"`
}

// UserQuota represents account limits and usage.
type UserQuota struct {
	DeviceLimit int `json:"deviceLimit" yaml:"deviceLimit"`
	DeviceCount int `json:"deviceCount" yaml:"deviceCount"`
	DataDays    int `json:"dataDays"    yaml:"dataDays"`
}

// UserProfileUpdateRequest carries mutable profile fields for a PUT.
type UserProfileUpdateRequest struct {
	// Name updates the display name; nil leaves it unchanged.
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
	// Timezone updates the preferred timezone; nil leaves it unchanged.
	Timezone *string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// Insight is a saved analytic over device data.
type Insight struct {
	ID        string    `json:"insightID"      yaml:"insightID"`
	Name      string    `json:"insightName"    yaml:"insightName"`
	Source    string    `json:"source"         yaml:"source"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	AddedOn   time.Time `json:"addedOn"        yaml:"addedOn"`
	UpdatedOn time.Time `json:"updatedOn"      yaml:"updatedOn"`
}

// InsightFetchRequest filters the account's insights.
type InsightFetchRequest struct {
	// Tags filters to insights carrying every listed tag.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Search matches against insight names.
	Search string `json:"search,omitempty" yaml:"search,omitempty"`
	// Pagination controls which page is returned.
	Pagination *PageRequest `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// InsightUpdateRequest carries mutable insight fields for a PUT.
type InsightUpdateRequest struct {
	// Name updates the insight name; nil leaves it unchanged.
	Name *string `json:"insightName,omitempty" yaml:"insightName,omitempty"`
	// Tags replaces the tag set when provided.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// InsightResult is one computed output of an insight.
type InsightResult struct {
	ID        string                 `json:"resultID"           yaml:"resultID"`
	InsightID string                 `json:"insightID"          yaml:"insightID"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Tags      []string               `json:"tags,omitempty"     yaml:"tags,omitempty"`
	AddedOn   time.Time              `json:"addedOn"            yaml:"addedOn"`
}

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page  int `json:"page"  yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
}

// Pagination reports the shape of a paginated listing.
type Pagination struct {
	Page         int `json:"page"         yaml:"page"`
	Limit        int `json:"limit"        yaml:"limit"`
	TotalCount   int `json:"totalCount"   yaml:"totalCount"`
	TotalPages   int `json:"totalPages"   yaml:"totalPages"`
}

// PaginatedResponse represents one page of resources.
type PaginatedResponse[T any] struct {
	Pagination Pagination `json:"pagination" yaml:"pagination"`
	Data       []T        `json:"data"       yaml:"data"`
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token     string    `json:"token"               yaml:"token"`
	UserID    string    `json:"userID"              yaml:"userID"`
	ExpiresAt time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

// DeviceList is a paginated list of devices.
type DeviceList = PaginatedResponse[Device]

// InsightList is a paginated list of insights.
type InsightList = PaginatedResponse[Insight]

// InsightResultList is a paginated list of insight results.
type InsightResultList = PaginatedResponse[InsightResult]
