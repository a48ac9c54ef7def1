package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

func newImmichServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// configureCLI points the CLI configuration at server. Tests using it must not
// run in parallel.
func configureCLI(t *testing.T, serverURL, output string) {
	t.Helper()

	useTempConfig(t)
	viper.Set("server", serverURL)
	viper.Set("api_key", "test-key")
	viper.Set("output", output)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestNewClientRequiresConfiguration(t *testing.T) { //nolint:paralleltest // mutates global viper state
	useTempConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	_, err := newClient(ctx)
	require.ErrorIs(t, err, constants.ErrNoServerConfigured)

	viper.Set("server", "https://photos.example.com")

	_, err = newClient(ctx)
	require.ErrorIs(t, err, constants.ErrNoAPIKeyConfigured)

	viper.Set("api_key", "key")

	client, err := newClient(ctx)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestInvalidOutputFormat(t *testing.T) { //nolint:paralleltest // mutates global viper state
	useTempConfig(t)
	viper.Set("output", "xml")

	_, err := execute(t, NewVersionCommand("1.0.0", "abc", "today"))
	require.ErrorIs(t, err, constants.ErrInvalidOutput)
}

func TestVersionCommandJSON(t *testing.T) { //nolint:paralleltest // mutates global viper state
	useTempConfig(t)
	viper.Set("output", "json")

	out, err := execute(t, NewVersionCommand("1.0.0", "abc", "today"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","commit":"abc","built":"today"}`, out)
}

func TestAuthCommand(t *testing.T) { //nolint:paralleltest // mutates global viper state
	t.Run("accepted key", func(t *testing.T) {
		server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/server/version":
				writeJSON(w, http.StatusOK, immich.ServerVersion{Major: 1, Minor: 119, Patch: 0})
			case "/api/albums":
				writeJSON(w, http.StatusOK, []immich.Album{})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		})

		configureCLI(t, server.URL, "yaml")

		out, err := execute(t, NewAuthCommand())
		require.NoError(t, err)
		assert.Contains(t, out, "major: 1")
		assert.Contains(t, out, "minor: 119")
	})

	t.Run("rejected key", func(t *testing.T) {
		server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/server/version" {
				writeJSON(w, http.StatusOK, immich.ServerVersion{Major: 1, Minor: 119})

				return
			}

			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid API key"})
		})

		configureCLI(t, server.URL, "table")

		_, err := execute(t, NewAuthCommand())
		require.ErrorIs(t, err, constants.ErrAuthCheckFailed)
	})
}

func TestAlbumsListCommand(t *testing.T) { //nolint:paralleltest // mutates global viper state
	server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/albums", r.URL.Path)

		if r.URL.Query().Get("shared") == "true" {
			writeJSON(w, http.StatusOK, []immich.Album{{ID: "a2", AlbumName: "Family", Shared: true}})

			return
		}

		writeJSON(w, http.StatusOK, []immich.Album{{ID: "a1", AlbumName: "Holiday", AssetCount: 3}})
	})

	configureCLI(t, server.URL, "json")

	out, err := execute(t, NewAlbumsCommand(), "list")
	require.NoError(t, err)

	var albums []immich.Album
	require.NoError(t, json.Unmarshal([]byte(out), &albums))
	require.Len(t, albums, 2)
	assert.Equal(t, "a1", albums[0].ID)
	assert.Equal(t, "a2", albums[1].ID)

	out, err = execute(t, NewAlbumsCommand(), "list", "--shared")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &albums))
	require.Len(t, albums, 1)
	assert.Equal(t, "Family", albums[0].AlbumName)

	_, err = execute(t, NewAlbumsCommand(), "list", "--owned", "--shared")
	require.ErrorIs(t, err, ErrOwnedAndShared)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestAlbumsDownloadCommand(t *testing.T) { //nolint:paralleltest // mutates global viper state
	server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/albums":
			if r.URL.Query().Get("shared") == "true" {
				writeJSON(w, http.StatusOK, []immich.Album{})

				return
			}

			writeJSON(w, http.StatusOK, []immich.Album{{ID: "a1", AlbumName: "Holiday", AssetCount: 2}})
		case "/api/albums/a1":
			writeJSON(w, http.StatusOK, immich.Album{
				ID:         "a1",
				AlbumName:  "Holiday",
				AssetCount: 2,
				Assets: []immich.Asset{
					{ID: "x1", OriginalFileName: "one.jpg"},
					{ID: "x2", OriginalFileName: "../two.jpg"},
				},
			})
		case "/api/assets/x1/original":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("one"))
		case "/api/assets/x2/original":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Asset not found"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	configureCLI(t, server.URL, "table")

	dir := filepath.Join(t.TempDir(), "holiday")

	_, err := execute(t, NewAlbumsCommand(), "download", "HOLIDAY", "--dir", dir)
	require.ErrorIs(t, err, constants.ErrSomeDownloadsFail)
	assert.Contains(t, err.Error(), "1 of 2 assets")

	data, err := os.ReadFile(filepath.Join(dir, "one.jpg")) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	assert.NoFileExists(t, filepath.Join(dir, "two.jpg"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "two.jpg"))

	_, err = execute(t, NewAlbumsCommand(), "download", "Missing", "--dir", dir)
	require.ErrorIs(t, err, immich.ErrAlbumNotFound)
}

func TestAlbumsDownloadDuplicateNames(t *testing.T) { //nolint:paralleltest // mutates global viper state
	server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/albums":
			if r.URL.Query().Get("shared") == "true" {
				writeJSON(w, http.StatusOK, []immich.Album{})

				return
			}

			writeJSON(w, http.StatusOK, []immich.Album{{ID: "a1", AlbumName: "Roll", AssetCount: 2}})
		case "/api/albums/a1":
			writeJSON(w, http.StatusOK, immich.Album{
				ID:         "a1",
				AlbumName:  "Roll",
				AssetCount: 2,
				Assets: []immich.Asset{
					{ID: "x1", OriginalFileName: "IMG_0001.JPG"},
					{ID: "x2", OriginalFileName: "IMG_0001.JPG"},
				},
			})
		case "/api/assets/x1/original":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("first"))
		case "/api/assets/x2/original":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("second"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	configureCLI(t, server.URL, "table")

	dir := t.TempDir()

	out, err := execute(t, NewAlbumsCommand(), "download", "Roll", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Downloaded 2 assets")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	first, err := os.ReadFile(filepath.Join(dir, "IMG_0001.JPG")) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "IMG_0001-2.JPG")) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))
}

func TestAssetsDownloadCommand(t *testing.T) { //nolint:paralleltest // mutates global viper state
	server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/assets/x1/original":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("pixels"))
		case "/api/assets/x1":
			writeJSON(w, http.StatusOK, immich.Asset{ID: "x1", OriginalFileName: "beach.jpg"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Asset not found"})
		}
	})

	configureCLI(t, server.URL, "table")

	t.Run("to standard output", func(t *testing.T) {
		out, err := execute(t, NewAssetsCommand(), "download", "x1")
		require.NoError(t, err)
		assert.Equal(t, "pixels", out)
	})

	t.Run("into a directory", func(t *testing.T) {
		dir := t.TempDir()

		_, err := execute(t, NewAssetsCommand(), "download", "x1", "-o", dir)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "beach.jpg")) // #nosec G304 -- test temp file
		require.NoError(t, err)
		assert.Equal(t, "pixels", string(data))
	})

	t.Run("missing asset", func(t *testing.T) {
		_, err := execute(t, NewAssetsCommand(), "download", "x9", "-o", filepath.Join(t.TempDir(), "x9.jpg"))
		require.ErrorIs(t, err, constants.ErrDownloadFailed)
	})
}

func TestJobsListCommand(t *testing.T) { //nolint:paralleltest // mutates global viper state
	server := newImmichServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]immich.JobStatus{
			"thumbnailGeneration": {JobCounts: immich.JobCounts{Active: 1, Waiting: 4}},
			"smartSearch":         {QueueStatus: immich.QueueStatus{IsPaused: true}},
		})
	})

	configureCLI(t, server.URL, "table")

	out, err := execute(t, NewJobsCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "thumbnailGeneration")
	assert.Contains(t, out, "smartSearch")
}
