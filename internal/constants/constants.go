package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as login.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry configuration. These mirror the platform's process-wide constants:
// every connector retries up to 15 times with a 2s base delay capped at 4s.
const (
	// DefaultRetryMax is the default maximum number of dispatch attempts.
	DefaultRetryMax = 15

	// DefaultRetryWaitMin is the base delay before the first retry.
	DefaultRetryWaitMin = 2 * time.Second

	// DefaultRetryWaitMax caps the backoff delay between attempts.
	DefaultRetryWaitMax = 4 * time.Second

	// ExponentialBackoffBase is the base for exponential backoff.
	ExponentialBackoffBase = 2
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 50

	// MaxPageSize is the largest page the backend accepts.
	MaxPageSize = 500
)

// URL templates for the platform REST API. Placeholders are resolved by
// internal/http.FormatURL: {protocol} and {backend_url} come from the client
// context, everything else from caller-supplied path substitutions.
const (
	// LoginURL authenticates a user and returns a bearer token.
	LoginURL = "{protocol}://{backend_url}/api/account/login"

	// UserDetailsURL returns the profile of the token's owner.
	UserDetailsURL = "{protocol}://{backend_url}/api/metaData/user"

	// UserQuotaURL returns the account's device/data quota.
	UserQuotaURL = "{protocol}://{backend_url}/api/metaData/user/quota"

	// UserProfileURL updates mutable profile fields.
	UserProfileURL = "{protocol}://{backend_url}/api/metaData/user/profile"

	// DeviceDetailsURL returns metadata for a single device.
	DeviceDetailsURL = "{protocol}://{backend_url}/api/metaData/device/{devID}"

	// AllDevicesURL returns every device visible to the account.
	AllDevicesURL = "{protocol}://{backend_url}/api/metaData/allDevices"

	// DevicesPaginatedURL returns one page of devices.
	DevicesPaginatedURL = "{protocol}://{backend_url}/api/metaData/device/paginated"

	// DeviceDataURL returns sensor data for a device within a time window.
	DeviceDataURL = "{protocol}://{backend_url}/api/apiLayer/device/{devID}/data"

	// LatestDataPointURL returns the most recent point for one sensor.
	LatestDataPointURL = "{protocol}://{backend_url}/api/apiLayer/device/{devID}/sensor/{sensor}/latest"

	// UserInsightsURL fetches the account's insights (POST, paginated).
	UserInsightsURL = "{protocol}://{backend_url}/api/insights/fetch"

	// InsightURL addresses a single insight.
	InsightURL = "{protocol}://{backend_url}/api/insights/{insightID}"

	// InsightResultsURL returns computed results for an insight.
	InsightResultsURL = "{protocol}://{backend_url}/api/insights/{insightID}/results"
)

// Output formats.
const (
	// FormatTable for tabular CLI output.
	FormatTable = "table"

	// FormatJSON for JSON output.
	FormatJSON = "json"

	// FormatYAML for YAML output.
	FormatYAML = "yaml"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
