package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// TimelineClient implements the immich.TimelineClient interface.
type TimelineClient struct {
	httpClient *http.Client
}

// NewTimelineClient creates a new TimelineClient.
func NewTimelineClient(httpClient *http.Client) *TimelineClient {
	return &TimelineClient{
		httpClient: httpClient,
	}
}

// Timeline returns the raw timeline document for params.
func (c *TimelineClient) Timeline(ctx context.Context, params url.Values) (json.RawMessage, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathTimeline, params)
	if err != nil {
		return nil, fmt.Errorf("getting timeline: %w", err)
	}

	return rawJSON(result)
}

// Buckets lists timeline buckets.
func (c *TimelineClient) Buckets(ctx context.Context, params url.Values) ([]immich.TimeBucket, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathTimelineBuckets, params)
	if err != nil {
		return nil, fmt.Errorf("getting timeline buckets: %w", err)
	}

	var buckets []immich.TimeBucket

	err = http.Decode(result, &buckets)
	if err != nil {
		return nil, fmt.Errorf("parsing timeline buckets response: %w", err)
	}

	return buckets, nil
}

// APIKeysClient implements the immich.APIKeysClient interface.
type APIKeysClient struct {
	httpClient *http.Client
}

// NewAPIKeysClient creates a new APIKeysClient.
func NewAPIKeysClient(httpClient *http.Client) *APIKeysClient {
	return &APIKeysClient{
		httpClient: httpClient,
	}
}

// List lists the current user's API keys.
func (c *APIKeysClient) List(ctx context.Context) ([]immich.APIKey, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathAPIKeys, nil)
	if err != nil {
		return nil, fmt.Errorf("listing API keys: %w", err)
	}

	var keys []immich.APIKey

	err = http.Decode(result, &keys)
	if err != nil {
		return nil, fmt.Errorf("parsing API keys response: %w", err)
	}

	return keys, nil
}

// Create creates an API key. The secret is only returned here.
func (c *APIKeysClient) Create(ctx context.Context, name string) (*immich.APIKeyCreateResponse, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathAPIKeys, map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("creating API key: %w", err)
	}

	var created immich.APIKeyCreateResponse

	err = http.Decode(result, &created)
	if err != nil {
		return nil, fmt.Errorf("parsing API key response: %w", err)
	}

	return &created, nil
}

// Delete revokes an API key.
func (c *APIKeysClient) Delete(ctx context.Context, keyID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathAPIKeys+"/"+keyID)
	if err != nil {
		return fmt.Errorf("deleting API key: %w", err)
	}

	return nil
}

// LibraryClient implements the immich.LibraryClient interface.
type LibraryClient struct {
	httpClient *http.Client
}

// NewLibraryClient creates a new LibraryClient.
func NewLibraryClient(httpClient *http.Client) *LibraryClient {
	return &LibraryClient{
		httpClient: httpClient,
	}
}

// Info returns the raw library document.
func (c *LibraryClient) Info(ctx context.Context) (json.RawMessage, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathLibrary, nil)
	if err != nil {
		return nil, fmt.Errorf("getting library info: %w", err)
	}

	return rawJSON(result)
}

// Cleanup asks the server to clean up the library.
func (c *LibraryClient) Cleanup(ctx context.Context) error {
	result, err := c.httpClient.Post(ctx, constants.APIPathLibraryCleanup, nil)
	if err != nil {
		return fmt.Errorf("cleaning up library: %w", err)
	}

	if stream, ok := result.(*http.StreamResult); ok {
		_ = stream.Body.Close()
	}

	return nil
}

// rawJSON returns the body of a JSON result, or JSON null for no content.
func rawJSON(result http.Result) (json.RawMessage, error) {
	var raw json.RawMessage

	err := http.Decode(result, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if raw == nil {
		raw = json.RawMessage("null")
	}

	return raw, nil
}
