package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/guanana/immich-lib/internal/client"
	"github.com/guanana/immich-lib/pkg/immich"
)

type countingLogger struct {
	debug int
}

func (l *countingLogger) Debug(string, map[string]interface{}) { l.debug++ }
func (l *countingLogger) Info(string, map[string]interface{})  {}
func (l *countingLogger) Warn(string, map[string]interface{})  {}
func (l *countingLogger) Error(string, map[string]interface{}) {}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), nil)
		require.ErrorIs(t, err, immich.ErrConfigRequired)
	})

	t.Run("requires server URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &immich.Config{APIKey: "key"})
		require.ErrorIs(t, err, immich.ErrServerURLRequired)
		assert.Contains(t, err.Error(), "server URL is required")
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &immich.Config{ServerURL: "https://photos.example.com"})
		require.ErrorIs(t, err, immich.ErrAPIKeyRequired)
	})

	t.Run("creates client with every resource", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &immich.Config{
			ServerURL:   "https://photos.example.com",
			APIKey:      "key",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "immich-test/1.0",
		})
		require.NoError(t, err)
		require.NotNil(t, client)

		assert.NotNil(t, client.Albums())
		assert.NotNil(t, client.Assets())
		assert.NotNil(t, client.Search())
		assert.NotNil(t, client.People())
		assert.NotNil(t, client.Tags())
		assert.NotNil(t, client.Stacks())
		assert.NotNil(t, client.Trash())
		assert.NotNil(t, client.Partners())
		assert.NotNil(t, client.Users())
		assert.NotNil(t, client.Server())
		assert.NotNil(t, client.Timeline())
		assert.NotNil(t, client.APIKeys())
		assert.NotNil(t, client.Library())
		assert.NotNil(t, client.Jobs())
		assert.NotNil(t, client.Features())
	})
}

func TestNew_ConfigIsApplied(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/users/me", request.URL.Path)
		assert.Equal(t, "secret-key", request.Header.Get("x-api-key"))
		assert.Equal(t, "immich-test/1.0", request.Header.Get("User-Agent"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"u1","email":"alice@example.com","name":"Alice"}`))
	}))
	defer server.Close()

	logger := &countingLogger{}

	client, err := New(context.Background(), &immich.Config{
		ServerURL:  server.URL + "/",
		APIKey:     "secret-key",
		UserAgent:  "immich-test/1.0",
		Debug:      true,
		Logger:     logger,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)

	user, err := client.Users().Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 2, logger.debug)
}
