package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// FeaturesClient implements the immich.FeaturesClient interface.
type FeaturesClient struct {
	httpClient *http.Client
}

// NewFeaturesClient creates a new features client.
func NewFeaturesClient(httpClient *http.Client) *FeaturesClient {
	return &FeaturesClient{
		httpClient: httpClient,
	}
}

// List returns every feature flag reported by the server.
func (c *FeaturesClient) List(ctx context.Context) (immich.ServerFeatures, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathServerFeatures, nil)
	if err != nil {
		return nil, fmt.Errorf("listing server features: %w", err)
	}

	features := immich.ServerFeatures{}

	err = http.Decode(result, &features)
	if err != nil {
		return nil, fmt.Errorf("parsing server features: %w", err)
	}

	return features, nil
}

// Enabled reports whether a single feature is on. Unknown features are off.
func (c *FeaturesClient) Enabled(ctx context.Context, feature string) (bool, error) {
	features, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	return features[feature], nil
}
