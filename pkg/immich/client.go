package immich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// AlbumsClient manages albums and reconciles owned and shared listings.
type AlbumsClient interface {
	List(ctx context.Context, filter AlbumFilter) ([]Album, error)
	Find(ctx context.Context, identifier string) (*Album, error)
	Get(ctx context.Context, albumID string) (*Album, error)
	Create(ctx context.Context, request *AlbumCreateRequest) (*Album, error)
	Update(ctx context.Context, albumID string, request *AlbumUpdateRequest) (*Album, error)
	Delete(ctx context.Context, albumID string) error
	AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]BulkIDResult, error)
	RemoveAssets(ctx context.Context, albumID string, assetIDs []string) ([]BulkIDResult, error)
	AddUsers(ctx context.Context, albumID string, users []AlbumUserAddRequest) (*Album, error)
	RemoveUser(ctx context.Context, albumID, userID string) error
}

// AssetsClient lists, mutates, downloads, and uploads assets.
type AssetsClient interface {
	List(ctx context.Context, filter *AssetSearch) ([]Asset, error)
	Get(ctx context.Context, assetID string) (*Asset, error)
	Update(ctx context.Context, assetID string, request *AssetUpdateRequest) (*Asset, error)
	Delete(ctx context.Context, request *AssetDeleteRequest) error
	Download(ctx context.Context, assetID string) (*Download, error)
	DownloadToFile(ctx context.Context, assetID, destination string, progress ProgressReporter) bool
	ViewThumbnail(ctx context.Context, assetID, size string, edited bool) (*Download, error)
	Upload(ctx context.Context, request *AssetUploadRequest) (*AssetUploadResult, error)
}

// SearchClient exposes the search endpoints.
type SearchClient interface {
	Metadata(ctx context.Context, request *AssetSearch) (*SearchResponse, error)
	Places(ctx context.Context, query string) ([]Place, error)
	Smart(ctx context.Context, request *SmartSearch) (*SearchResponse, error)
	Explore(ctx context.Context) ([]ExploreData, error)
}

// PeopleClient manages recognized people.
type PeopleClient interface {
	List(ctx context.Context, withHidden bool) (*PeopleResponse, error)
	Get(ctx context.Context, personID string) (*Person, error)
	Update(ctx context.Context, personID string, request *PersonUpdateRequest) (*Person, error)
	Assets(ctx context.Context, personID string) ([]Asset, error)
	Merge(ctx context.Context, primaryPersonID string, personIDs []string) ([]BulkIDResult, error)
}

// TagsClient manages tags and their asset assignments.
type TagsClient interface {
	List(ctx context.Context) ([]Tag, error)
	Create(ctx context.Context, request *TagCreateRequest) (*Tag, error)
	Get(ctx context.Context, tagID string) (*Tag, error)
	Update(ctx context.Context, tagID, name string) (*Tag, error)
	Delete(ctx context.Context, tagID string) error
	TagAssets(ctx context.Context, tagID string, assetIDs []string) ([]BulkIDResult, error)
	UntagAssets(ctx context.Context, tagID string, assetIDs []string) ([]BulkIDResult, error)
}

// StacksClient manages asset stacks.
type StacksClient interface {
	Create(ctx context.Context, primaryAssetID string, assetIDs []string) (*Stack, error)
	Get(ctx context.Context, stackID string) (*Stack, error)
	Update(ctx context.Context, stackID, primaryAssetID string) (*Stack, error)
	Delete(ctx context.Context, stackID string) error
	RemoveAsset(ctx context.Context, stackID, assetID string) error
}

// TrashClient manages trashed assets.
type TrashClient interface {
	Get(ctx context.Context) ([]Asset, error)
	Empty(ctx context.Context) (*TrashResponse, error)
	Restore(ctx context.Context) (*TrashResponse, error)
	RestoreAssets(ctx context.Context, assetIDs []string) (*TrashResponse, error)
}

// PartnersClient manages partner sharing.
type PartnersClient interface {
	List(ctx context.Context, direction PartnerDirection) ([]Partner, error)
	Create(ctx context.Context, partnerID string) (*Partner, error)
	Update(ctx context.Context, partnerID string, request *PartnerUpdateRequest) (*Partner, error)
	Delete(ctx context.Context, partnerID string) error
}

// UsersClient manages users.
type UsersClient interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	Me(ctx context.Context) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	Update(ctx context.Context, userID string, request *UserUpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) error
}

// ServerClient exposes server and system information.
type ServerClient interface {
	Version(ctx context.Context) (*ServerVersion, error)
	Info(ctx context.Context) (ServerInfo, error)
	Statistics(ctx context.Context) (*ServerStatistics, error)
	Config(ctx context.Context) (*ServerConfig, error)
	StorageInfo(ctx context.Context) (*StorageInfo, error)
	CheckAuth(ctx context.Context) *ServerVersion
}

// TimelineClient exposes the timeline endpoints. Query parameters are passed
// through unchanged.
type TimelineClient interface {
	Timeline(ctx context.Context, params url.Values) (json.RawMessage, error)
	Buckets(ctx context.Context, params url.Values) ([]TimeBucket, error)
}

// APIKeysClient manages the current user's API keys.
type APIKeysClient interface {
	List(ctx context.Context) ([]APIKey, error)
	Create(ctx context.Context, name string) (*APIKeyCreateResponse, error)
	Delete(ctx context.Context, keyID string) error
}

// LibraryClient exposes library maintenance endpoints.
type LibraryClient interface {
	Info(ctx context.Context) (json.RawMessage, error)
	Cleanup(ctx context.Context) error
}

// JobsClient manages the server's background job queues.
type JobsClient interface {
	List(ctx context.Context) (map[string]JobStatus, error)
	Command(ctx context.Context, name JobName, request *JobCommandRequest) (*JobStatus, error)
	WaitIdle(ctx context.Context, name JobName) (*JobStatus, error)
}

// FeaturesClient reports which optional server features are enabled.
type FeaturesClient interface {
	List(ctx context.Context) (ServerFeatures, error)
	Enabled(ctx context.Context, feature string) (bool, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Albums() AlbumsClient
	Assets() AssetsClient
	Search() SearchClient
	People() PeopleClient
	Tags() TagsClient
	Stacks() StacksClient
	Trash() TrashClient
	Partners() PartnersClient
	Users() UsersClient
	Server() ServerClient
	Timeline() TimelineClient
	APIKeys() APIKeysClient
	Library() LibraryClient
	Jobs() JobsClient
	Features() FeaturesClient
}

type Client interface {
	ResourceClients

	// CheckAuth verifies reachability and the API key. It returns the server
	// version on success and nil on any failure.
	CheckAuth(ctx context.Context) *ServerVersion
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// ProgressReporter receives byte-count progress for a file download.
// total is 0 when the server did not declare a content length.
type ProgressReporter interface {
	Start(name string, total int64)
	Advance(n int64)
	Finish()
}

// NopProgress ignores progress updates.
type NopProgress struct{}

func (NopProgress) Start(string, int64) {}
func (NopProgress) Advance(int64)       {}
func (NopProgress) Finish()             {}

// Config represents client configuration for building an immich.Client.
//
// ServerURL is the base URL of the server, e.g. "http://immich.local:2283";
// requests go to ServerURL + "/api". immichclient.New trims a trailing slash
// and adds "https://" if no scheme is present.
//
// There is no retry policy: every call issues exactly one HTTP request and
// failures surface immediately. Per-request cancellation is controlled via the
// context passed to client methods.
type Config struct {
	// ServerURL: base URL of the Immich server.
	ServerURL string
	// APIKey: sent as the x-api-key header on every request.
	APIKey string

	// HTTPTimeout: how long to wait for response headers. Body streaming is
	// not capped. Defaults to 30s.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: logs every request and response at debug level.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// HTTPClient: optional client whose Transport is reused.
	HTTPClient *http.Client
	// SkipTLSVerify: accept self-signed certificates. Only honored when
	// IMMICH_DEV_MODE is set.
	SkipTLSVerify bool
}
