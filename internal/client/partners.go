package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// PartnersClient implements the immich.PartnersClient interface.
type PartnersClient struct {
	httpClient *http.Client
}

// NewPartnersClient creates a new PartnersClient.
func NewPartnersClient(httpClient *http.Client) *PartnersClient {
	return &PartnersClient{
		httpClient: httpClient,
	}
}

// List lists partners in the given direction, shared-with-me by default.
func (c *PartnersClient) List(ctx context.Context, direction immich.PartnerDirection) ([]immich.Partner, error) {
	if direction == "" {
		direction = immich.PartnerSharedWithMe
	}

	query := url.Values{"direction": []string{string(direction)}}

	result, err := c.httpClient.Get(ctx, constants.APIPathPartners, query)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}

	var partners []immich.Partner

	err = http.Decode(result, &partners)
	if err != nil {
		return nil, fmt.Errorf("parsing partners response: %w", err)
	}

	return partners, nil
}

// Create shares the current user's library with partnerID.
func (c *PartnersClient) Create(ctx context.Context, partnerID string) (*immich.Partner, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathPartners+"/"+partnerID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating partner: %w", err)
	}

	return decodePartner(result)
}

// Update changes whether a partner's assets show in the timeline.
func (c *PartnersClient) Update(ctx context.Context, partnerID string, request *immich.PartnerUpdateRequest) (*immich.Partner, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathPartners+"/"+partnerID, request)
	if err != nil {
		return nil, fmt.Errorf("updating partner: %w", err)
	}

	return decodePartner(result)
}

// Delete stops sharing with a partner.
func (c *PartnersClient) Delete(ctx context.Context, partnerID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathPartners+"/"+partnerID)
	if err != nil {
		return fmt.Errorf("deleting partner: %w", err)
	}

	return nil
}

func decodePartner(result http.Result) (*immich.Partner, error) {
	var partner immich.Partner

	err := http.Decode(result, &partner)
	if err != nil {
		return nil, fmt.Errorf("parsing partner response: %w", err)
	}

	return &partner, nil
}
