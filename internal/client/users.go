package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// UsersClient implements the immich.UsersClient interface.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new UsersClient.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// List lists users.
func (c *UsersClient) List(ctx context.Context) ([]immich.User, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathUsers, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []immich.User

	err = http.Decode(result, &users)
	if err != nil {
		return nil, fmt.Errorf("parsing users response: %w", err)
	}

	return users, nil
}

// Create creates a user. Requires an admin API key.
func (c *UsersClient) Create(ctx context.Context, request *immich.UserCreateRequest) (*immich.User, error) {
	result, err := c.httpClient.Post(ctx, constants.APIPathUsers, request)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decodeUser(result)
}

// Me returns the user owning the API key.
func (c *UsersClient) Me(ctx context.Context) (*immich.User, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathUsersMe, nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return decodeUser(result)
}

// Get retrieves a user.
func (c *UsersClient) Get(ctx context.Context, userID string) (*immich.User, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathUsers+"/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeUser(result)
}

// Update updates a user.
func (c *UsersClient) Update(ctx context.Context, userID string, request *immich.UserUpdateRequest) (*immich.User, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathUsers+"/"+userID, request)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return decodeUser(result)
}

// Delete deletes a user.
func (c *UsersClient) Delete(ctx context.Context, userID string) error {
	_, err := c.httpClient.Delete(ctx, constants.APIPathUsers+"/"+userID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

func decodeUser(result http.Result) (*immich.User, error) {
	var user immich.User

	err := http.Decode(result, &user)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
