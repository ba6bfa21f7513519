package ioconnect

import (
	"context"
	"time"
)

// DevicesClient provides access to device metadata and sensor data.
type DevicesClient interface {
	Get(ctx context.Context, deviceID string) (*Device, error)
	List(ctx context.Context) ([]Device, error)
	ListPaginated(ctx context.Context, page *PageRequest) (*DeviceList, error)
	GetData(ctx context.Context, query *DataQuery) (*DataQueryResult, error)
	GetLatestPoint(ctx context.Context, deviceID, sensor string) (*DataPoint, error)
}

// UsersClient provides access to the account profile.
type UsersClient interface {
	GetDetails(ctx context.Context) (*UserDetails, error)
	GetQuota(ctx context.Context) (*UserQuota, error)
	UpdateProfile(ctx context.Context, request *UserProfileUpdateRequest) (*UserDetails, error)
}

// InsightsClient provides access to saved insights and their results.
type InsightsClient interface {
	FetchUserInsights(ctx context.Context, request *InsightFetchRequest) (*InsightList, error)
	GetResults(ctx context.Context, insightID string, page *PageRequest) (*InsightResultList, error)
	UpdateInsight(ctx context.Context, insightID string, request *InsightUpdateRequest) (*Insight, error)
}

// Client is the top-level SDK entry point.
type Client interface {
	Devices() DevicesClient
	Users() UsersClient
	Insights() InsightsClient

	// Login authenticates with username/password and returns a bearer token.
	// It performs a single POST and never retries.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an ioconnect.Client.
//
// # Transport selection
//
// OnPrem selects plain http for on-premise installations; the default is
// https. BackendHost is a bare host (optionally host:port) — ioclient.New
// normalizes values that include a scheme or a trailing slash.
//
// # Retries
//
// Every request is retried on network failures, non-2xx statuses, and
// undecodable response bodies, up to RetryMax attempts with exponential
// backoff bounded by RetryWaitMin/RetryWaitMax. Zero values select the
// platform defaults (15 attempts, 2s base, 4s cap). Per-request deadlines
// and cancellation are controlled via the context passed to client methods.
type Config struct {
	// BackendHost is the platform host all requests target. Required.
	BackendHost string

	// AccessToken is the bearer credential sent on every request.
	AccessToken string

	// OnPrem selects http instead of https.
	OnPrem bool

	// Timezone is the default timezone sent with data queries.
	Timezone string

	// RetryMax is the maximum number of dispatch attempts per call.
	RetryMax int
	// RetryWaitMin is the base backoff delay.
	RetryWaitMin time.Duration
	// RetryWaitMax caps the backoff delay.
	RetryWaitMax time.Duration

	// HTTPTimeout bounds a single attempt; 0 uses the transport default.
	HTTPTimeout time.Duration

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
