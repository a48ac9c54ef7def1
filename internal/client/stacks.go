package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// StacksClient implements the immich.StacksClient interface.
type StacksClient struct {
	httpClient *http.Client
}

// NewStacksClient creates a new StacksClient.
func NewStacksClient(httpClient *http.Client) *StacksClient {
	return &StacksClient{
		httpClient: httpClient,
	}
}

// Create stacks assetIDs behind primaryAssetID.
func (c *StacksClient) Create(ctx context.Context, primaryAssetID string, assetIDs []string) (*immich.Stack, error) {
	body := struct {
		PrimaryAssetID string   `json:"primaryAssetId"`
		AssetIDs       []string `json:"assetIds"`
	}{PrimaryAssetID: primaryAssetID, AssetIDs: assetIDs}

	result, err := c.httpClient.Post(ctx, constants.APIPathStacks, body)
	if err != nil {
		return nil, fmt.Errorf("creating stack: %w", err)
	}

	return decodeStack(result)
}

// Get retrieves a stack.
func (c *StacksClient) Get(ctx context.Context, stackID string) (*immich.Stack, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathStacks+"/"+stackID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting stack: %w", err)
	}

	return decodeStack(result)
}

// Update changes the primary asset of a stack.
func (c *StacksClient) Update(ctx context.Context, stackID, primaryAssetID string) (*immich.Stack, error) {
	body := map[string]string{"primaryAssetId": primaryAssetID}

	result, err := c.httpClient.Put(ctx, constants.APIPathStacks+"/"+stackID, body)
	if err != nil {
		return nil, fmt.Errorf("updating stack: %w", err)
	}

	return decodeStack(result)
}

// Delete deletes a stack. The assets are kept.
func (c *StacksClient) Delete(ctx context.Context, stackID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathStacks+"/"+stackID)
	if err != nil {
		return fmt.Errorf("deleting stack: %w", err)
	}

	return nil
}

// RemoveAsset takes one asset out of a stack.
func (c *StacksClient) RemoveAsset(ctx context.Context, stackID, assetID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathStacks+"/"+stackID+"/assets/"+assetID)
	if err != nil {
		return fmt.Errorf("removing asset from stack: %w", err)
	}

	return nil
}

func decodeStack(result http.Result) (*immich.Stack, error) {
	var stack immich.Stack

	err := http.Decode(result, &stack)
	if err != nil {
		return nil, fmt.Errorf("parsing stack response: %w", err)
	}

	return &stack, nil
}
