package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// DownloadDirPerm is the permission for directories created for downloads.
	DownloadDirPerm = 0750
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds the wait for response headers.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick checks such as the server ping.
	ShortHTTPTimeout = 10 * time.Second

	// IdleConnTimeout is how long pooled connections stay open.
	IdleConnTimeout = 90 * time.Second

	// DefaultJobPollInterval is the default interval for job queue polling.
	DefaultJobPollInterval = 2 * time.Second

	// DefaultJobPollTimeout is the default timeout for job queue polling.
	DefaultJobPollTimeout = 5 * time.Minute
)

// Wire protocol.
const (
	// APIPathSuffix is appended to the server URL to form the API root.
	APIPathSuffix = "/api"

	// HeaderAPIKey carries the API key on every request.
	HeaderAPIKey = "x-api-key"

	// ContentTypeJSON is the media type for JSON bodies.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "immich-lib-go/1.0"

	// DevModeEnv enables insecure options meant for local development.
	DevModeEnv = "IMMICH_DEV_MODE"

	// UploadFormField is the multipart field name for asset file data.
	UploadFormField = "assetData"
)

// Streaming.
const (
	// DownloadChunkSize is the read size used when copying a download to disk.
	DownloadChunkSize = 8 * 1024

	// MaxErrorBodySize caps how much of an error response is read.
	MaxErrorBodySize = 64 * 1024
)

// API paths, relative to the API root.
const (
	APIPathAlbums          = "albums"
	APIPathAssets          = "assets"
	APIPathSearchMetadata  = "search/metadata"
	APIPathSearchPlaces    = "search/places"
	APIPathSearchSmart     = "search/smart"
	APIPathSearchExplore   = "search/explore"
	APIPathPeople          = "people"
	APIPathTags            = "tags"
	APIPathStacks          = "stacks"
	APIPathTrash           = "trash"
	APIPathTrashRestore    = "trash/restore"
	APIPathTrashRestoreIDs = "trash/restore/assets"
	APIPathPartners        = "partners"
	APIPathUsers           = "users"
	APIPathUsersMe         = "users/me"
	APIPathServerVersion   = "server/version"
	APIPathServerInfo      = "server/info"
	APIPathServerStats     = "server/statistics"
	APIPathServerConfig    = "server/config"
	APIPathStorageInfo     = "system-metadata/storage-info"
	APIPathServerFeatures  = "server/features"
	APIPathServerPing      = "server/ping"
	APIPathJobs            = "jobs"
	APIPathTimeline        = "timeline"
	APIPathTimelineBuckets = "timeline/buckets"
	APIPathAPIKeys         = "api-keys"
	APIPathLibrary         = "library"
	APIPathLibraryCleanup  = "library/cleanup"
)

// Query parameters.
const (
	// QueryShared selects owned (false) or shared (true) albums.
	QueryShared = "shared"
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// UUIDLength is the standard UUID length.
	UUIDLength = 36

	// ProgressBarWidth is the width of the download progress bar.
	ProgressBarWidth = 40
)
