package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// TagsClient implements the immich.TagsClient interface.
type TagsClient struct {
	httpClient *http.Client
}

// NewTagsClient creates a new TagsClient.
func NewTagsClient(httpClient *http.Client) *TagsClient {
	return &TagsClient{
		httpClient: httpClient,
	}
}

// List lists all tags.
func (c *TagsClient) List(ctx context.Context) ([]immich.Tag, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathTags, nil)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []immich.Tag

	err = http.Decode(result, &tags)
	if err != nil {
		return nil, fmt.Errorf("parsing tags response: %w", err)
	}

	return tags, nil
}

// Create creates a tag. An empty Type defaults to TEXT.
func (c *TagsClient) Create(ctx context.Context, request *immich.TagCreateRequest) (*immich.Tag, error) {
	var body immich.TagCreateRequest
	if request != nil {
		body = *request
	}

	if body.Type == "" {
		body.Type = immich.TagTypeText
	}

	result, err := c.httpClient.Post(ctx, constants.APIPathTags, &body)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	return decodeTag(result)
}

// Get retrieves a tag.
func (c *TagsClient) Get(ctx context.Context, tagID string) (*immich.Tag, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathTags+"/"+tagID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}

	return decodeTag(result)
}

// Update renames a tag.
func (c *TagsClient) Update(ctx context.Context, tagID, name string) (*immich.Tag, error) {
	body := map[string]string{"name": name}

	result, err := c.httpClient.Patch(ctx, constants.APIPathTags+"/"+tagID, body)
	if err != nil {
		return nil, fmt.Errorf("updating tag: %w", err)
	}

	return decodeTag(result)
}

// Delete deletes a tag.
func (c *TagsClient) Delete(ctx context.Context, tagID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathTags+"/"+tagID)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	return nil
}

// TagAssets applies a tag to assets.
func (c *TagsClient) TagAssets(ctx context.Context, tagID string, assetIDs []string) ([]immich.BulkIDResult, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathTags+"/"+tagID+"/assets", idsBody{IDs: assetIDs})
	if err != nil {
		return nil, fmt.Errorf("tagging assets: %w", err)
	}

	return decodeBulkResults(result)
}

// UntagAssets removes a tag from assets.
func (c *TagsClient) UntagAssets(ctx context.Context, tagID string, assetIDs []string) ([]immich.BulkIDResult, error) {
	result, err := c.httpClient.DeleteWithBody(ctx, constants.APIPathTags+"/"+tagID+"/assets", idsBody{IDs: assetIDs})
	if err != nil {
		return nil, fmt.Errorf("untagging assets: %w", err)
	}

	return decodeBulkResults(result)
}

func decodeTag(result http.Result) (*immich.Tag, error) {
	var tag immich.Tag

	err := http.Decode(result, &tag)
	if err != nil {
		return nil, fmt.Errorf("parsing tag response: %w", err)
	}

	return &tag, nil
}
