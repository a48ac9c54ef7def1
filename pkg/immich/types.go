package immich

import (
	"fmt"
	"io"
	"time"
)

// AlbumFilter selects which ownership class of albums a listing returns.
type AlbumFilter int

const (
	// AlbumFilterUnspecified merges owned and shared albums.
	AlbumFilterUnspecified AlbumFilter = iota
	// AlbumFilterOwned returns only albums created by the current user.
	AlbumFilterOwned
	// AlbumFilterShared returns only albums shared with the current user.
	AlbumFilterShared
)

// String returns the filter name.
func (f AlbumFilter) String() string {
	switch f {
	case AlbumFilterOwned:
		return "owned"
	case AlbumFilterShared:
		return "shared"
	default:
		return "all"
	}
}

// User represents an Immich user.
type User struct {
	ID                   string     `json:"id"                             yaml:"id"`
	Email                string     `json:"email"                          yaml:"email"`
	Name                 string     `json:"name"                           yaml:"name"`
	ProfileImagePath     string     `json:"profileImagePath,omitempty"     yaml:"profile_image_path,omitempty"`
	AvatarColor          string     `json:"avatarColor,omitempty"          yaml:"avatar_color,omitempty"`
	IsAdmin              bool       `json:"isAdmin,omitempty"              yaml:"is_admin,omitempty"`
	ShouldChangePassword bool       `json:"shouldChangePassword,omitempty" yaml:"should_change_password,omitempty"`
	StorageLabel         *string    `json:"storageLabel,omitempty"         yaml:"storage_label,omitempty"`
	QuotaSizeInBytes     *int64     `json:"quotaSizeInBytes,omitempty"     yaml:"quota_size_in_bytes,omitempty"`
	QuotaUsageInBytes    *int64     `json:"quotaUsageInBytes,omitempty"    yaml:"quota_usage_in_bytes,omitempty"`
	Status               string     `json:"status,omitempty"               yaml:"status,omitempty"`
	CreatedAt            *time.Time `json:"createdAt,omitempty"            yaml:"created_at,omitempty"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"            yaml:"updated_at,omitempty"`
	DeletedAt            *time.Time `json:"deletedAt,omitempty"            yaml:"deleted_at,omitempty"`
}

// AlbumUser is a user an album is shared with, together with their role.
type AlbumUser struct {
	User User   `json:"user" yaml:"user"`
	Role string `json:"role" yaml:"role"`
}

// Album represents an Immich album. ID is the identity key used when
// reconciling owned and shared listings.
type Album struct {
	ID                         string      `json:"id"                                   yaml:"id"`
	AlbumName                  string      `json:"albumName"                            yaml:"album_name"`
	Description                string      `json:"description,omitempty"                yaml:"description,omitempty"`
	AlbumThumbnailAssetID      *string     `json:"albumThumbnailAssetId,omitempty"      yaml:"album_thumbnail_asset_id,omitempty"`
	OwnerID                    string      `json:"ownerId,omitempty"                    yaml:"owner_id,omitempty"`
	Owner                      *User       `json:"owner,omitempty"                      yaml:"owner,omitempty"`
	AlbumUsers                 []AlbumUser `json:"albumUsers,omitempty"                 yaml:"album_users,omitempty"`
	Shared                     bool        `json:"shared"                               yaml:"shared"`
	HasSharedLink              bool        `json:"hasSharedLink,omitempty"              yaml:"has_shared_link,omitempty"`
	IsActivityEnabled          bool        `json:"isActivityEnabled,omitempty"          yaml:"is_activity_enabled,omitempty"`
	AssetCount                 int         `json:"assetCount"                           yaml:"asset_count"`
	Assets                     []Asset     `json:"assets,omitempty"                     yaml:"assets,omitempty"`
	Order                      string      `json:"order,omitempty"                      yaml:"order,omitempty"`
	StartDate                  *time.Time  `json:"startDate,omitempty"                  yaml:"start_date,omitempty"`
	EndDate                    *time.Time  `json:"endDate,omitempty"                    yaml:"end_date,omitempty"`
	LastModifiedAssetTimestamp *time.Time  `json:"lastModifiedAssetTimestamp,omitempty" yaml:"last_modified_asset_timestamp,omitempty"`
	CreatedAt                  *time.Time  `json:"createdAt,omitempty"                  yaml:"created_at,omitempty"`
	UpdatedAt                  *time.Time  `json:"updatedAt,omitempty"                  yaml:"updated_at,omitempty"`
}

// ExifInfo holds the EXIF metadata the server extracted from an asset.
type ExifInfo struct {
	Make             *string    `json:"make,omitempty"             yaml:"make,omitempty"`
	Model            *string    `json:"model,omitempty"            yaml:"model,omitempty"`
	ExifImageWidth   *int       `json:"exifImageWidth,omitempty"   yaml:"exif_image_width,omitempty"`
	ExifImageHeight  *int       `json:"exifImageHeight,omitempty"  yaml:"exif_image_height,omitempty"`
	FileSizeInByte   *int64     `json:"fileSizeInByte,omitempty"   yaml:"file_size_in_byte,omitempty"`
	DateTimeOriginal *time.Time `json:"dateTimeOriginal,omitempty" yaml:"date_time_original,omitempty"`
	City             *string    `json:"city,omitempty"             yaml:"city,omitempty"`
	State            *string    `json:"state,omitempty"            yaml:"state,omitempty"`
	Country          *string    `json:"country,omitempty"          yaml:"country,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty"         yaml:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"        yaml:"longitude,omitempty"`
	Description      *string    `json:"description,omitempty"      yaml:"description,omitempty"`
}

// Asset represents a photo, video, or other file managed by the server.
type Asset struct {
	ID               string     `json:"id"                         yaml:"id"`
	DeviceAssetID    string     `json:"deviceAssetId,omitempty"    yaml:"device_asset_id,omitempty"`
	DeviceID         string     `json:"deviceId,omitempty"         yaml:"device_id,omitempty"`
	OwnerID          string     `json:"ownerId,omitempty"          yaml:"owner_id,omitempty"`
	Type             string     `json:"type,omitempty"             yaml:"type,omitempty"`
	OriginalPath     string     `json:"originalPath,omitempty"     yaml:"original_path,omitempty"`
	OriginalFileName string     `json:"originalFileName,omitempty" yaml:"original_file_name,omitempty"`
	OriginalMimeType string     `json:"originalMimeType,omitempty" yaml:"original_mime_type,omitempty"`
	Checksum         string     `json:"checksum,omitempty"         yaml:"checksum,omitempty"`
	Duration         string     `json:"duration,omitempty"         yaml:"duration,omitempty"`
	Visibility       string     `json:"visibility,omitempty"       yaml:"visibility,omitempty"`
	IsFavorite       bool       `json:"isFavorite"                 yaml:"is_favorite"`
	IsArchived       bool       `json:"isArchived"                 yaml:"is_archived"`
	IsTrashed        bool       `json:"isTrashed"                  yaml:"is_trashed"`
	FileCreatedAt    *time.Time `json:"fileCreatedAt,omitempty"    yaml:"file_created_at,omitempty"`
	FileModifiedAt   *time.Time `json:"fileModifiedAt,omitempty"   yaml:"file_modified_at,omitempty"`
	LocalDateTime    *time.Time `json:"localDateTime,omitempty"    yaml:"local_date_time,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"        yaml:"updated_at,omitempty"`
	ExifInfo         *ExifInfo  `json:"exifInfo,omitempty"         yaml:"exif_info,omitempty"`
	People           []Person   `json:"people,omitempty"           yaml:"people,omitempty"`
	Tags             []Tag      `json:"tags,omitempty"             yaml:"tags,omitempty"`
}

// Person is a face cluster recognized by the server.
type Person struct {
	ID            string     `json:"id"                      yaml:"id"`
	Name          string     `json:"name"                    yaml:"name"`
	BirthDate     *string    `json:"birthDate,omitempty"     yaml:"birth_date,omitempty"`
	ThumbnailPath string     `json:"thumbnailPath,omitempty" yaml:"thumbnail_path,omitempty"`
	IsHidden      bool       `json:"isHidden"                yaml:"is_hidden"`
	IsFavorite    bool       `json:"isFavorite,omitempty"    yaml:"is_favorite,omitempty"`
	Color         string     `json:"color,omitempty"         yaml:"color,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"     yaml:"updated_at,omitempty"`
}

// PeopleResponse is the response of the people listing endpoint.
type PeopleResponse struct {
	Total       int      `json:"total"                 yaml:"total"`
	Hidden      int      `json:"hidden"                yaml:"hidden"`
	HasNextPage bool     `json:"hasNextPage,omitempty" yaml:"has_next_page,omitempty"`
	People      []Person `json:"people"                yaml:"people"`
}

// Tag represents a user-defined tag.
type Tag struct {
	ID        string     `json:"id"                  yaml:"id"`
	Name      string     `json:"name"                yaml:"name"`
	Value     string     `json:"value,omitempty"     yaml:"value,omitempty"`
	Color     string     `json:"color,omitempty"     yaml:"color,omitempty"`
	ParentID  string     `json:"parentId,omitempty"  yaml:"parent_id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Stack groups related assets behind a primary asset.
type Stack struct {
	ID             string  `json:"id"             yaml:"id"`
	PrimaryAssetID string  `json:"primaryAssetId" yaml:"primary_asset_id"`
	Assets         []Asset `json:"assets"         yaml:"assets"`
}

// Partner is a user participating in partner sharing.
type Partner struct {
	User `yaml:",inline"`

	InTimeline bool `json:"inTimeline" yaml:"in_timeline"`
}

// PartnerDirection selects which side of a partner relationship to list.
type PartnerDirection string

const (
	PartnerSharedBy   PartnerDirection = "shared-by"
	PartnerSharedWith PartnerDirection = "shared-with"
	// PartnerSharedWithMe is the default direction.
	PartnerSharedWithMe PartnerDirection = "shared-with-me"
)

// BulkIDResult is the per-id outcome of a bulk mutation.
type BulkIDResult struct {
	ID      string `json:"id"              yaml:"id"`
	Success bool   `json:"success"         yaml:"success"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TrashResponse reports how many assets a trash operation affected.
type TrashResponse struct {
	Count int `json:"count" yaml:"count"`
}

// APIKey is an API key registered for the current user.
type APIKey struct {
	ID          string     `json:"id"                    yaml:"id"`
	Name        string     `json:"name"                  yaml:"name"`
	Permissions []string   `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"   yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"   yaml:"updated_at,omitempty"`
}

// APIKeyCreateResponse contains the secret of a freshly created key. The
// secret is only ever returned once.
type APIKeyCreateResponse struct {
	Secret string `json:"secret" yaml:"secret"`
	APIKey APIKey `json:"apiKey" yaml:"api_key"`
}

// TimeBucket is a timeline bucket and the number of assets it holds.
type TimeBucket struct {
	TimeBucket string `json:"timeBucket" yaml:"time_bucket"`
	Count      int    `json:"count"      yaml:"count"`
}

// Place is a geographic search result.
type Place struct {
	Name       string  `json:"name"                 yaml:"name"`
	Latitude   float64 `json:"latitude"             yaml:"latitude"`
	Longitude  float64 `json:"longitude"            yaml:"longitude"`
	Admin1Name *string `json:"admin1name,omitempty" yaml:"admin1_name,omitempty"`
	Admin2Name *string `json:"admin2name,omitempty" yaml:"admin2_name,omitempty"`
}

// ExploreItem is a representative asset for an explore category value.
type ExploreItem struct {
	Value string `json:"value" yaml:"value"`
	Data  Asset  `json:"data"  yaml:"data"`
}

// ExploreData groups explore items under a field name (e.g. "exifInfo.city").
type ExploreData struct {
	FieldName string        `json:"fieldName" yaml:"field_name"`
	Items     []ExploreItem `json:"items"     yaml:"items"`
}

// SearchAssetPage is the asset section of a search response.
type SearchAssetPage struct {
	Total    int     `json:"total"              yaml:"total"`
	Count    int     `json:"count"              yaml:"count"`
	Items    []Asset `json:"items"              yaml:"items"`
	NextPage *string `json:"nextPage,omitempty" yaml:"next_page,omitempty"`
}

// SearchAlbumPage is the album section of a search response.
type SearchAlbumPage struct {
	Total int     `json:"total" yaml:"total"`
	Count int     `json:"count" yaml:"count"`
	Items []Album `json:"items" yaml:"items"`
}

// SearchResponse is the envelope returned by the search endpoints.
type SearchResponse struct {
	Albums SearchAlbumPage `json:"albums" yaml:"albums"`
	Assets SearchAssetPage `json:"assets" yaml:"assets"`
}

// ServerVersion is the semantic version reported by the server.
type ServerVersion struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`
}

// String formats the version as vMAJOR.MINOR.PATCH.
func (v ServerVersion) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ServerInfo is the free-form server information document.
type ServerInfo map[string]interface{}

// UsageByUser is one user's share of the server statistics.
type UsageByUser struct {
	UserID           string `json:"userId"           yaml:"user_id"`
	UserName         string `json:"userName"         yaml:"user_name"`
	Photos           int    `json:"photos"           yaml:"photos"`
	Videos           int    `json:"videos"           yaml:"videos"`
	Usage            int64  `json:"usage"            yaml:"usage"`
	QuotaSizeInBytes *int64 `json:"quotaSizeInBytes" yaml:"quota_size_in_bytes"`
}

// ServerStatistics summarizes library size across all users.
type ServerStatistics struct {
	Photos      int           `json:"photos"      yaml:"photos"`
	Videos      int           `json:"videos"      yaml:"videos"`
	Usage       int64         `json:"usage"       yaml:"usage"`
	UsageByUser []UsageByUser `json:"usageByUser" yaml:"usage_by_user"`
}

// ServerConfig is the public server configuration.
type ServerConfig struct {
	LoginPageMessage string `json:"loginPageMessage" yaml:"login_page_message"`
	TrashDays        int    `json:"trashDays"        yaml:"trash_days"`
	UserDeleteDelay  int    `json:"userDeleteDelay"  yaml:"user_delete_delay"`
	OAuthButtonText  string `json:"oauthButtonText"  yaml:"oauth_button_text"`
	IsInitialized    bool   `json:"isInitialized"    yaml:"is_initialized"`
	IsOnboarded      bool   `json:"isOnboarded"      yaml:"is_onboarded"`
	ExternalDomain   string `json:"externalDomain"   yaml:"external_domain"`
	PublicUsers      bool   `json:"publicUsers"      yaml:"public_users"`
}

// StorageInfo reports disk usage of the server's upload location.
type StorageInfo struct {
	DiskSize            string  `json:"diskSize"            yaml:"disk_size"`
	DiskUse             string  `json:"diskUse"             yaml:"disk_use"`
	DiskAvailable       string  `json:"diskAvailable"       yaml:"disk_available"`
	DiskSizeRaw         int64   `json:"diskSizeRaw"         yaml:"disk_size_raw"`
	DiskUseRaw          int64   `json:"diskUseRaw"          yaml:"disk_use_raw"`
	DiskAvailableRaw    int64   `json:"diskAvailableRaw"    yaml:"disk_available_raw"`
	DiskUsagePercentage float64 `json:"diskUsagePercentage" yaml:"disk_usage_percentage"`
}

// ServerFeatures maps optional feature names to whether they are enabled.
type ServerFeatures map[string]bool

// JobName identifies a background job queue.
type JobName string

// Job queues that can be commanded.
const (
	JobThumbnailGeneration JobName = "thumbnailGeneration"
	JobMetadataExtraction  JobName = "metadataExtraction"
	JobVideoConversion     JobName = "videoConversion"
	JobFaceDetection       JobName = "faceDetection"
	JobFacialRecognition   JobName = "facialRecognition"
	JobSmartSearch         JobName = "smartSearch"
	JobDuplicateDetection  JobName = "duplicateDetection"
	JobStorageTemplate     JobName = "storageTemplateMigration"
	JobMigration           JobName = "migration"
	JobSearch              JobName = "search"
	JobSidecar             JobName = "sidecar"
	JobLibrary             JobName = "library"
	JobNotifications       JobName = "notifications"
	JobBackgroundTask      JobName = "backgroundTask"
)

// JobCommand is an action applied to a job queue.
type JobCommand string

// Job queue commands.
const (
	JobCommandStart       JobCommand = "start"
	JobCommandPause       JobCommand = "pause"
	JobCommandResume      JobCommand = "resume"
	JobCommandEmpty       JobCommand = "empty"
	JobCommandClearFailed JobCommand = "clear-failed"
)

// JobCounts holds the number of jobs per state in a queue.
type JobCounts struct {
	Active    int `json:"active"    yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
	Failed    int `json:"failed"    yaml:"failed"`
	Delayed   int `json:"delayed"   yaml:"delayed"`
	Waiting   int `json:"waiting"   yaml:"waiting"`
	Paused    int `json:"paused"    yaml:"paused"`
}

// QueueStatus is the run state of a queue.
type QueueStatus struct {
	IsActive bool `json:"isActive" yaml:"is_active"`
	IsPaused bool `json:"isPaused" yaml:"is_paused"`
}

// JobStatus is the state of one job queue.
type JobStatus struct {
	JobCounts   JobCounts   `json:"jobCounts"   yaml:"job_counts"`
	QueueStatus QueueStatus `json:"queueStatus" yaml:"queue_status"`
}

// Idle reports whether the queue has nothing running or waiting.
func (s JobStatus) Idle() bool {
	return !s.QueueStatus.IsActive && s.JobCounts.Active == 0 && s.JobCounts.Waiting == 0
}

// AssetUploadResult is the outcome of an upload.
type AssetUploadResult struct {
	ID     string `json:"id"     yaml:"id"`
	Status string `json:"status" yaml:"status"`
}

// Download is an open, caller-consumed response body for a binary endpoint.
// Close must be called once the body has been read.
type Download struct {
	io.ReadCloser

	ContentType string
	// ContentLength is the declared length, or 0 when unknown.
	ContentLength int64
}
