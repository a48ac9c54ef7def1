package immich

import "time"

// AlbumCreateRequest is the body for creating an album.
type AlbumCreateRequest struct {
	AlbumName   string   `json:"albumName"             yaml:"album_name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	AssetIDs    []string `json:"assetIds,omitempty"    yaml:"asset_ids,omitempty"`
}

// AlbumUpdateRequest is the body for a partial album update. Empty fields
// are left unchanged on the server.
type AlbumUpdateRequest struct {
	AlbumName             string `json:"albumName,omitempty"             yaml:"album_name,omitempty"`
	Description           string `json:"description,omitempty"           yaml:"description,omitempty"`
	AlbumThumbnailAssetID string `json:"albumThumbnailAssetId,omitempty" yaml:"album_thumbnail_asset_id,omitempty"`
}

// AlbumUserAddRequest shares an album with one user.
type AlbumUserAddRequest struct {
	UserID string `json:"userId"         yaml:"user_id"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Album user roles.
const (
	AlbumRoleEditor = "editor"
	AlbumRoleViewer = "viewer"
)

// AssetSearch is the body of a metadata search. The zero value matches every
// asset the API key can see.
type AssetSearch struct {
	ID               string     `json:"id,omitempty"               yaml:"id,omitempty"`
	Query            string     `json:"query,omitempty"            yaml:"query,omitempty"`
	OriginalFileName string     `json:"originalFileName,omitempty" yaml:"original_file_name,omitempty"`
	Description      string     `json:"description,omitempty"      yaml:"description,omitempty"`
	Type             string     `json:"type,omitempty"             yaml:"type,omitempty"`
	Visibility       string     `json:"visibility,omitempty"       yaml:"visibility,omitempty"`
	IsFavorite       *bool      `json:"isFavorite,omitempty"       yaml:"is_favorite,omitempty"`
	IsArchived       *bool      `json:"isArchived,omitempty"       yaml:"is_archived,omitempty"`
	WithDeleted      *bool      `json:"withDeleted,omitempty"      yaml:"with_deleted,omitempty"`
	WithExif         *bool      `json:"withExif,omitempty"         yaml:"with_exif,omitempty"`
	City             string     `json:"city,omitempty"             yaml:"city,omitempty"`
	Country          string     `json:"country,omitempty"          yaml:"country,omitempty"`
	Make             string     `json:"make,omitempty"             yaml:"make,omitempty"`
	Model            string     `json:"model,omitempty"            yaml:"model,omitempty"`
	PersonIDs        []string   `json:"personIds,omitempty"        yaml:"person_ids,omitempty"`
	TagIDs           []string   `json:"tagIds,omitempty"           yaml:"tag_ids,omitempty"`
	AlbumIDs         []string   `json:"albumIds,omitempty"         yaml:"album_ids,omitempty"`
	TakenAfter       *time.Time `json:"takenAfter,omitempty"       yaml:"taken_after,omitempty"`
	TakenBefore      *time.Time `json:"takenBefore,omitempty"      yaml:"taken_before,omitempty"`
	Order            string     `json:"order,omitempty"            yaml:"order,omitempty"`
	Page             int        `json:"page,omitempty"             yaml:"page,omitempty"`
	Size             int        `json:"size,omitempty"             yaml:"size,omitempty"`
}

// SmartSearch holds the parameters of a CLIP-based search.
type SmartSearch struct {
	Query      string
	Type       string
	IsFavorite *bool
	Page       int
	Size       int
}

// AssetUpdateRequest updates asset metadata. Nil fields are left unchanged.
type AssetUpdateRequest struct {
	IsFavorite       *bool    `json:"isFavorite,omitempty"       yaml:"is_favorite,omitempty"`
	IsArchived       *bool    `json:"isArchived,omitempty"       yaml:"is_archived,omitempty"`
	Visibility       *string  `json:"visibility,omitempty"       yaml:"visibility,omitempty"`
	Description      *string  `json:"description,omitempty"      yaml:"description,omitempty"`
	DateTimeOriginal *string  `json:"dateTimeOriginal,omitempty" yaml:"date_time_original,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"         yaml:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"        yaml:"longitude,omitempty"`
	Rating           *int     `json:"rating,omitempty"           yaml:"rating,omitempty"`
}

// AssetDeleteRequest deletes a set of assets, moving them to the trash
// unless Force is set.
type AssetDeleteRequest struct {
	IDs   []string `json:"ids"             yaml:"ids"`
	Force bool     `json:"force,omitempty" yaml:"force,omitempty"`
}

// AssetUploadRequest describes a local file to upload as a new asset.
type AssetUploadRequest struct {
	FilePath       string
	DeviceAssetID  string
	DeviceID       string
	FileCreatedAt  time.Time
	FileModifiedAt time.Time
	IsFavorite     bool
	Duration       string
}

// Thumbnail sizes accepted by the thumbnail endpoint.
const (
	ThumbnailSizePreview   = "preview"
	ThumbnailSizeThumbnail = "thumbnail"
	ThumbnailSizeFullsize  = "fullsize"
)

// PersonUpdateRequest updates a person. Nil fields are left unchanged.
type PersonUpdateRequest struct {
	Name               *string `json:"name,omitempty"               yaml:"name,omitempty"`
	BirthDate          *string `json:"birthDate,omitempty"          yaml:"birth_date,omitempty"`
	IsHidden           *bool   `json:"isHidden,omitempty"           yaml:"is_hidden,omitempty"`
	IsFavorite         *bool   `json:"isFavorite,omitempty"         yaml:"is_favorite,omitempty"`
	FeatureFaceAssetID *string `json:"featureFaceAssetId,omitempty" yaml:"feature_face_asset_id,omitempty"`
}

// TagCreateRequest is the body for creating a tag.
type TagCreateRequest struct {
	Name     string `json:"name"               yaml:"name"`
	Type     string `json:"type,omitempty"     yaml:"type,omitempty"`
	Color    string `json:"color,omitempty"    yaml:"color,omitempty"`
	ParentID string `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
}

// TagTypeText is the default tag type.
const TagTypeText = "TEXT"

// PartnerUpdateRequest updates partner sharing settings.
type PartnerUpdateRequest struct {
	InTimeline bool `json:"inTimeline" yaml:"in_timeline"`
}

// UserCreateRequest is the body for creating a user.
type UserCreateRequest struct {
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"-"`
	Name     string `json:"name"     yaml:"name"`
	IsAdmin  bool   `json:"isAdmin"  yaml:"is_admin"`
}

// UserUpdateRequest updates a user. Nil fields are left unchanged.
type UserUpdateRequest struct {
	Email                *string `json:"email,omitempty"                yaml:"email,omitempty"`
	Name                 *string `json:"name,omitempty"                 yaml:"name,omitempty"`
	Password             *string `json:"password,omitempty"             yaml:"-"`
	IsAdmin              *bool   `json:"isAdmin,omitempty"              yaml:"is_admin,omitempty"`
	ShouldChangePassword *bool   `json:"shouldChangePassword,omitempty" yaml:"should_change_password,omitempty"`
	StorageLabel         *string `json:"storageLabel,omitempty"         yaml:"storage_label,omitempty"`
	QuotaSizeInBytes     *int64  `json:"quotaSizeInBytes,omitempty"     yaml:"quota_size_in_bytes,omitempty"`
}

// JobCommandRequest is the body for commanding a job queue. Force applies
// start to every asset instead of only those missing the job's output.
type JobCommandRequest struct {
	Command JobCommand `json:"command" yaml:"command"`
	Force   bool       `json:"force"   yaml:"force"`
}
