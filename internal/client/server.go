package client

import (
	"context"
	"fmt"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// ServerClient implements the immich.ServerClient interface.
type ServerClient struct {
	httpClient *http.Client
	logger     immich.Logger
}

// NewServerClient creates a new ServerClient.
func NewServerClient(httpClient *http.Client, logger immich.Logger) *ServerClient {
	if logger == nil {
		logger = immich.NopLogger{}
	}

	return &ServerClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Version returns the server version. The endpoint does not require
// authentication.
func (c *ServerClient) Version(ctx context.Context) (*immich.ServerVersion, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathServerVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server version: %w", err)
	}

	var version immich.ServerVersion

	err = http.Decode(result, &version)
	if err != nil {
		return nil, fmt.Errorf("parsing server version response: %w", err)
	}

	return &version, nil
}

// Info returns the server information document.
func (c *ServerClient) Info(ctx context.Context) (immich.ServerInfo, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathServerInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}

	info := immich.ServerInfo{}

	err = http.Decode(result, &info)
	if err != nil {
		return nil, fmt.Errorf("parsing server info response: %w", err)
	}

	return info, nil
}

// Statistics returns per-user usage. Requires an admin API key.
func (c *ServerClient) Statistics(ctx context.Context) (*immich.ServerStatistics, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathServerStats, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server statistics: %w", err)
	}

	var stats immich.ServerStatistics

	err = http.Decode(result, &stats)
	if err != nil {
		return nil, fmt.Errorf("parsing server statistics response: %w", err)
	}

	return &stats, nil
}

// Config returns the public server configuration.
func (c *ServerClient) Config(ctx context.Context) (*immich.ServerConfig, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathServerConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server config: %w", err)
	}

	var config immich.ServerConfig

	err = http.Decode(result, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing server config response: %w", err)
	}

	return &config, nil
}

// StorageInfo returns disk usage of the upload location.
func (c *ServerClient) StorageInfo(ctx context.Context) (*immich.StorageInfo, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathStorageInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("getting storage info: %w", err)
	}

	var storage immich.StorageInfo

	err = http.Decode(result, &storage)
	if err != nil {
		return nil, fmt.Errorf("parsing storage info response: %w", err)
	}

	return &storage, nil
}

// CheckAuth fetches the server version and then lists albums
// with the API key. It returns the version on success and nil on any failure;
// unreachable servers and rejected keys are only told apart in the log.
func (c *ServerClient) CheckAuth(ctx context.Context) *immich.ServerVersion {
	version, err := c.Version(ctx)
	if err == nil {
		var albums http.Result

		albums, err = c.httpClient.Get(ctx, constants.APIPathAlbums, nil)
		if err != nil {
			err = fmt.Errorf("checking albums access: %w", err)
		} else if stream, ok := albums.(*http.StreamResult); ok {
			_ = stream.Body.Close()
		}
	}

	if err != nil {
		if immich.IsUnauthorized(err) {
			c.logger.Error("Authentication failed, check the API key", map[string]interface{}{
				"server": c.httpClient.BaseURL(),
			})
		} else {
			c.logger.Error("Error connecting to Immich", map[string]interface{}{
				"server": c.httpClient.BaseURL(),
				"error":  err.Error(),
			})
		}

		return nil
	}

	return version
}
