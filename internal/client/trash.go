package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// TrashClient implements the immich.TrashClient interface.
type TrashClient struct {
	httpClient *http.Client
}

// NewTrashClient creates a new TrashClient.
func NewTrashClient(httpClient *http.Client) *TrashClient {
	return &TrashClient{
		httpClient: httpClient,
	}
}

// Get lists trashed assets.
func (c *TrashClient) Get(ctx context.Context) ([]immich.Asset, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathTrash, nil)
	if err != nil {
		return nil, fmt.Errorf("getting trash: %w", err)
	}

	var assets []immich.Asset

	err = http.Decode(result, &assets)
	if err != nil {
		return nil, fmt.Errorf("parsing trash response: %w", err)
	}

	return assets, nil
}

// Empty permanently deletes everything in the trash.
func (c *TrashClient) Empty(ctx context.Context) (*immich.TrashResponse, error) {
	result, err := c.httpClient.Delete(ctx, constants.APIPathTrash)
	if err != nil {
		return nil, fmt.Errorf("emptying trash: %w", err)
	}

	return decodeTrashResponse(result)
}

// Restore restores everything in the trash.
func (c *TrashClient) Restore(ctx context.Context) (*immich.TrashResponse, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathTrashRestore, nil)
	if err != nil {
		return nil, fmt.Errorf("restoring trash: %w", err)
	}

	return decodeTrashResponse(result)
}

// RestoreAssets restores the given assets from the trash.
func (c *TrashClient) RestoreAssets(ctx context.Context, assetIDs []string) (*immich.TrashResponse, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathTrashRestoreIDs, idsBody{IDs: assetIDs})
	if err != nil {
		return nil, fmt.Errorf("restoring assets: %w", err)
	}

	return decodeTrashResponse(result)
}

func decodeTrashResponse(result http.Result) (*immich.TrashResponse, error) {
	var response immich.TrashResponse

	err := http.Decode(result, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing trash response: %w", err)
	}

	return &response, nil
}
