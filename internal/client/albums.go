package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// AlbumsClient implements the immich.AlbumsClient interface.
type AlbumsClient struct {
	httpClient *http.Client
}

// NewAlbumsClient creates a new AlbumsClient.
func NewAlbumsClient(httpClient *http.Client) *AlbumsClient {
	return &AlbumsClient{
		httpClient: httpClient,
	}
}

// List returns albums matching filter. AlbumFilterUnspecified fetches the
// owned and shared listings and merges them with MergeAlbums.
func (c *AlbumsClient) List(ctx context.Context, filter immich.AlbumFilter) ([]immich.Album, error) {
	switch filter {
	case immich.AlbumFilterOwned:
		return c.listShared(ctx, false)
	case immich.AlbumFilterShared:
		return c.listShared(ctx, true)
	}

	owned, err := c.listShared(ctx, false)
	if err != nil {
		return nil, err
	}

	shared, err := c.listShared(ctx, true)
	if err != nil {
		return nil, err
	}

	return MergeAlbums(owned, shared), nil
}

func (c *AlbumsClient) listShared(ctx context.Context, shared bool) ([]immich.Album, error) {
	query := url.Values{}
	query.Set(constants.QueryShared, constants.BooleanFalse)

	kind := "owned"
	if shared {
		query.Set(constants.QueryShared, constants.BooleanTrue)

		kind = "shared"
	}

	result, err := c.httpClient.Get(ctx, constants.APIPathAlbums, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s albums: %w", kind, err)
	}

	var albums []immich.Album

	err = http.Decode(result, &albums)
	if err != nil {
		return nil, fmt.Errorf("parsing %s albums response: %w", kind, err)
	}

	return albums, nil
}

// MergeAlbums returns every album of owned and shared exactly once, keyed by
// ID. When an ID appears in both, the owned entry is kept. The result lists
// owned albums in their original order followed by albums only present in
// shared.
func MergeAlbums(owned, shared []immich.Album) []immich.Album {
	merged := make([]immich.Album, 0, len(owned)+len(shared))
	seen := make(map[string]struct{}, len(owned)+len(shared))

	for _, list := range [][]immich.Album{owned, shared} {
		for _, album := range list {
			if _, ok := seen[album.ID]; ok {
				continue
			}

			seen[album.ID] = struct{}{}
			merged = append(merged, album)
		}
	}

	return merged
}

// Find returns the first album, in merged order, whose ID equals identifier
// or whose name matches it ignoring case. Albums that share a name are not
// disambiguated.
func (c *AlbumsClient) Find(ctx context.Context, identifier string) (*immich.Album, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, immich.ErrAlbumIdentifierNeeded
	}

	albums, err := c.List(ctx, immich.AlbumFilterUnspecified)
	if err != nil {
		return nil, fmt.Errorf("finding album: %w", err)
	}

	album := FindAlbum(albums, identifier)
	if album == nil {
		return nil, fmt.Errorf("%w: %s", immich.ErrAlbumNotFound, identifier)
	}

	return album, nil
}

// FindAlbum scans albums for an ID match or a case-insensitive name match.
func FindAlbum(albums []immich.Album, identifier string) *immich.Album {
	folder := cases.Fold()
	folded := folder.String(identifier)

	for i := range albums {
		if albums[i].ID == identifier || folder.String(albums[i].AlbumName) == folded {
			return &albums[i]
		}
	}

	return nil
}

// Get retrieves an album together with its assets.
func (c *AlbumsClient) Get(ctx context.Context, albumID string) (*immich.Album, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathAlbums+"/"+albumID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting album: %w", err)
	}

	var album immich.Album

	err = http.Decode(result, &album)
	if err != nil {
		return nil, fmt.Errorf("parsing album response: %w", err)
	}

	return &album, nil
}

// Create creates a new album.
func (c *AlbumsClient) Create(ctx context.Context, request *immich.AlbumCreateRequest) (*immich.Album, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathAlbums, request)
	if err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	var album immich.Album

	err = http.Decode(result, &album)
	if err != nil {
		return nil, fmt.Errorf("parsing album response: %w", err)
	}

	return &album, nil
}

// Update changes an album's name, description, or thumbnail.
func (c *AlbumsClient) Update(ctx context.Context, albumID string, request *immich.AlbumUpdateRequest) (*immich.Album, error) {
	result, err := c.httpClient.Patch(ctx, constants.APIPathAlbums+"/"+albumID, request)
	if err != nil {
		return nil, fmt.Errorf("updating album: %w", err)
	}

	var album immich.Album

	err = http.Decode(result, &album)
	if err != nil {
		return nil, fmt.Errorf("parsing album response: %w", err)
	}

	return &album, nil
}

// Delete deletes an album. Its assets are not deleted.
func (c *AlbumsClient) Delete(ctx context.Context, albumID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathAlbums+"/"+albumID)
	if err != nil {
		return fmt.Errorf("deleting album: %w", err)
	}

	return nil
}

// AddAssets adds assets to an album.
func (c *AlbumsClient) AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]immich.BulkIDResult, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathAlbums+"/"+albumID+"/assets", idsBody{IDs: assetIDs})
	if err != nil {
		return nil, fmt.Errorf("adding assets to album: %w", err)
	}

	return decodeBulkResults(result)
}

// RemoveAssets removes assets from an album.
func (c *AlbumsClient) RemoveAssets(ctx context.Context, albumID string, assetIDs []string) ([]immich.BulkIDResult, error) {
	result, err := c.httpClient.DeleteWithBody(ctx, constants.APIPathAlbums+"/"+albumID+"/assets", idsBody{IDs: assetIDs})
	if err != nil {
		return nil, fmt.Errorf("removing assets from album: %w", err)
	}

	return decodeBulkResults(result)
}

// AddUsers shares an album with users.
func (c *AlbumsClient) AddUsers(ctx context.Context, albumID string, users []immich.AlbumUserAddRequest) (*immich.Album, error) {
	body := struct {
		AlbumUsers []immich.AlbumUserAddRequest `json:"albumUsers"`
	}{AlbumUsers: users}

	result, err := c.httpClient.Put(ctx, constants.APIPathAlbums+"/"+albumID+"/users", body)
	if err != nil {
		return nil, fmt.Errorf("adding users to album: %w", err)
	}

	var album immich.Album

	err = http.Decode(result, &album)
	if err != nil {
		return nil, fmt.Errorf("parsing album response: %w", err)
	}

	return &album, nil
}

// RemoveUser removes a user from an album. Pass "me" to leave a shared album.
func (c *AlbumsClient) RemoveUser(ctx context.Context, albumID, userID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathAlbums+"/"+albumID+"/user/"+userID)
	if err != nil {
		return fmt.Errorf("removing user from album: %w", err)
	}

	return nil
}

// idsBody is the {"ids": [...]} payload shared by bulk endpoints.
type idsBody struct {
	IDs []string `json:"ids"`
}

func decodeBulkResults(result http.Result) ([]immich.BulkIDResult, error) {
	var results []immich.BulkIDResult

	err := http.Decode(result, &results)
	if err != nil {
		return nil, fmt.Errorf("parsing bulk response: %w", err)
	}

	return results, nil
}
