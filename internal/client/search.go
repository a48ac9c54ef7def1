package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// SearchClient implements the immich.SearchClient interface.
type SearchClient struct {
	httpClient *http.Client
}

// NewSearchClient creates a new SearchClient.
func NewSearchClient(httpClient *http.Client) *SearchClient {
	return &SearchClient{
		httpClient: httpClient,
	}
}

// Metadata searches assets by metadata and returns the full envelope.
func (c *SearchClient) Metadata(ctx context.Context, request *immich.AssetSearch) (*immich.SearchResponse, error) {
	if request == nil {
		request = &immich.AssetSearch{}
	}

	result, err := c.httpClient.Post(ctx, constants.APIPathSearchMetadata, request)
	if err != nil {
		return nil, fmt.Errorf("searching metadata: %w", err)
	}

	var response immich.SearchResponse

	err = http.Decode(result, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &response, nil
}

// Places searches known places by name.
func (c *SearchClient) Places(ctx context.Context, query string) ([]immich.Place, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathSearchPlaces, url.Values{"name": []string{query}})
	if err != nil {
		return nil, fmt.Errorf("searching places: %w", err)
	}

	var places []immich.Place

	err = http.Decode(result, &places)
	if err != nil {
		return nil, fmt.Errorf("parsing places response: %w", err)
	}

	return places, nil
}

// Smart runs a CLIP-based search.
func (c *SearchClient) Smart(ctx context.Context, request *immich.SmartSearch) (*immich.SearchResponse, error) {
	if request == nil {
		request = &immich.SmartSearch{}
	}

	result, err := c.httpClient.Get(ctx, constants.APIPathSearchSmart, smartSearchQuery(request))
	if err != nil {
		return nil, fmt.Errorf("running smart search: %w", err)
	}

	var response immich.SearchResponse

	err = http.Decode(result, &response)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return &response, nil
}

func smartSearchQuery(request *immich.SmartSearch) url.Values {
	query := url.Values{}
	query.Set("query", request.Query)

	if request.Type != "" {
		query.Set("type", request.Type)
	}

	if request.IsFavorite != nil {
		query.Set("isFavorite", strconv.FormatBool(*request.IsFavorite))
	}

	if request.Page > 0 {
		query.Set("page", strconv.Itoa(request.Page))
	}

	if request.Size > 0 {
		query.Set("size", strconv.Itoa(request.Size))
	}

	return query
}

// Explore returns representative assets grouped by field.
func (c *SearchClient) Explore(ctx context.Context) ([]immich.ExploreData, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathSearchExplore, nil)
	if err != nil {
		return nil, fmt.Errorf("getting explore data: %w", err)
	}

	var data []immich.ExploreData

	err = http.Decode(result, &data)
	if err != nil {
		return nil, fmt.Errorf("parsing explore response: %w", err)
	}

	return data, nil
}
