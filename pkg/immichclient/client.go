// Package immichclient provides the main entry point for creating Immich API clients
package immichclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/guanana/immich-lib/internal/client"
	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// New creates a new Immich API client. The server URL is normalized and the
// API key is required.
func New(ctx context.Context, config *immich.Config) (immich.Client, error) {
	if config == nil {
		return nil, immich.ErrConfigRequired
	}

	serverURL := NormalizeServerURL(config.ServerURL)
	if serverURL == "" {
		return nil, immich.ErrServerURLRequired
	}

	normalized := *config
	normalized.ServerURL = serverURL

	if normalized.SkipTLSVerify && normalized.HTTPClient == nil {
		httpClient, err := insecureHTTPClient(normalized.HTTPTimeout)
		if err != nil {
			return nil, err
		}

		normalized.HTTPClient = httpClient
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeServerURL trims whitespace and trailing slashes and adds https://
// when no scheme is present. An empty input stays empty.
func NormalizeServerURL(serverURL string) string {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return ""
	}

	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	return serverURL
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnv)

	return devMode == "true" || devMode == "1"
}

// insecureHTTPClient creates a pooled client that skips certificate checks.
func insecureHTTPClient(timeout time.Duration) (*http.Client, error) {
	if !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set %s=true)", immich.ErrSkipTLSOnlyInDev, constants.DevModeEnv)
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- Protected by development environment check above
	transport.IdleConnTimeout = constants.IdleConnTimeout

	transport.ResponseHeaderTimeout = constants.DefaultHTTPTimeout
	if timeout > 0 {
		transport.ResponseHeaderTimeout = timeout
	}

	return &http.Client{Transport: transport}, nil
}

// Ping checks that an Immich server answers at serverURL. It needs no API
// key and is meant to validate a URL before credentials are asked for.
func Ping(ctx context.Context, serverURL string) error {
	return PingWithLogger(ctx, serverURL, nil)
}

// PingWithLogger is Ping with request and response logged at debug level.
// It does not use the API transport, which always sends x-api-key.
func PingWithLogger(ctx context.Context, serverURL string, logger immich.Logger) error {
	if logger == nil {
		logger = immich.NopLogger{}
	}

	serverURL = NormalizeServerURL(serverURL)
	if serverURL == "" {
		return immich.ErrServerURLRequired
	}

	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = constants.ShortHTTPTimeout

	endpoint := serverURL + constants.APIPathSuffix + "/" + constants.APIPathServerPing

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	logger.Debug("HTTP Request", map[string]interface{}{
		"method": http.MethodGet,
		"url":    endpoint,
	})

	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinging server: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	logger.Debug("HTTP Response", map[string]interface{}{
		"status":       resp.StatusCode,
		"content_type": resp.Header.Get("Content-Type"),
		"duration":     time.Since(start).String(),
	})

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", immich.ErrPingFailed, resp.StatusCode)
	}

	var pong struct {
		Res string `json:"res"`
	}

	err = json.NewDecoder(resp.Body).Decode(&pong)
	if err != nil {
		return fmt.Errorf("parsing ping response: %w", err)
	}

	if pong.Res != "pong" {
		return fmt.Errorf("%w: unexpected answer %q", immich.ErrPingFailed, pong.Res)
	}

	return nil
}

// NewWithAPIKey creates a new client with a server URL and API key.
func NewWithAPIKey(ctx context.Context, serverURL, apiKey string) (immich.Client, error) {
	return New(ctx, &immich.Config{
		ServerURL: serverURL,
		APIKey:    apiKey,
	})
}
