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

// PeopleClient implements the immich.PeopleClient interface.
type PeopleClient struct {
	httpClient *http.Client
}

// NewPeopleClient creates a new PeopleClient.
func NewPeopleClient(httpClient *http.Client) *PeopleClient {
	return &PeopleClient{
		httpClient: httpClient,
	}
}

// List lists recognized people.
func (c *PeopleClient) List(ctx context.Context, withHidden bool) (*immich.PeopleResponse, error) {
	query := url.Values{"withHidden": []string{strconv.FormatBool(withHidden)}}

	result, err := c.httpClient.Get(ctx, constants.APIPathPeople, query)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}

	var people immich.PeopleResponse

	err = http.Decode(result, &people)
	if err != nil {
		return nil, fmt.Errorf("parsing people response: %w", err)
	}

	return &people, nil
}

// Get retrieves a person.
func (c *PeopleClient) Get(ctx context.Context, personID string) (*immich.Person, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathPeople+"/"+personID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}

	var person immich.Person

	err = http.Decode(result, &person)
	if err != nil {
		return nil, fmt.Errorf("parsing person response: %w", err)
	}

	return &person, nil
}

// Update changes a person's name, visibility, or featured face.
func (c *PeopleClient) Update(ctx context.Context, personID string, request *immich.PersonUpdateRequest) (*immich.Person, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathPeople+"/"+personID, request)
	if err != nil {
		return nil, fmt.Errorf("updating person: %w", err)
	}

	var person immich.Person

	err = http.Decode(result, &person)
	if err != nil {
		return nil, fmt.Errorf("parsing person response: %w", err)
	}

	return &person, nil
}

// Assets lists the assets a person appears in.
func (c *PeopleClient) Assets(ctx context.Context, personID string) ([]immich.Asset, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathPeople+"/"+personID+"/assets", nil)
	if err != nil {
		return nil, fmt.Errorf("listing person assets: %w", err)
	}

	var assets []immich.Asset

	err = http.Decode(result, &assets)
	if err != nil {
		return nil, fmt.Errorf("parsing assets response: %w", err)
	}

	return assets, nil
}

// Merge folds personIDs into primaryPersonID.
func (c *PeopleClient) Merge(ctx context.Context, primaryPersonID string, personIDs []string) ([]immich.BulkIDResult, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathPeople+"/"+primaryPersonID+"/merge", idsBody{IDs: personIDs})
	if err != nil {
		return nil, fmt.Errorf("merging people: %w", err)
	}

	return decodeBulkResults(result)
}
