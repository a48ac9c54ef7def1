package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	immichhttp "github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func writeJSON(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(v)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/albums", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "test-key", request.Header.Get("x-api-key"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			writeJSON(writer, http.StatusOK, []map[string]string{{"id": "a1", "albumName": "Trip"}})
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Do(context.Background(), &immichhttp.Request{
			Method: immichhttp.MethodFetch,
			Path:   "albums",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, result.Status())

		var albums []immich.Album

		require.NoError(t, immichhttp.Decode(result, &albums))
		require.Len(t, albums, 1)
		assert.Equal(t, "a1", albums[0].ID)
		assert.Equal(t, "Trip", albums[0].AlbumName)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/albums", request.URL.Path)
			assert.Equal(t, "shared=true", request.URL.RawQuery)
			writeJSON(writer, http.StatusOK, []interface{}{})
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Get(context.Background(), "albums", url.Values{"shared": []string{"true"}})
		require.NoError(t, err)
		assert.IsType(t, &immichhttp.JSONResult{}, result)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Trip", body["albumName"])

			writeJSON(writer, http.StatusCreated, map[string]string{"id": "a1"})
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Post(context.Background(), "albums", map[string]string{"albumName": "Trip"})
		require.NoError(t, err)
		assert.Equal(t, 201, result.Status())
	})

	t.Run("raw body is sent verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "text/plain", request.Header.Get("Content-Type"))

			data, _ := io.ReadAll(request.Body)
			assert.Equal(t, "raw-bytes", string(data))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		_, err := client.Do(context.Background(), &immichhttp.Request{
			Method:      immichhttp.MethodCreate,
			Path:        "assets",
			RawBody:     []byte("raw-bytes"),
			ContentType: "text/plain",
		})
		require.NoError(t, err)
	})

	t.Run("no content returns success marker", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Delete(context.Background(), "albums/a1")
		require.NoError(t, err)

		noContent, ok := result.(*immichhttp.NoContentResult)
		require.True(t, ok)
		assert.True(t, noContent.OK())
		assert.Equal(t, 204, noContent.Status())
	})

	t.Run("non-JSON content returns stream", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "image/jpeg")
			writer.Header().Set("Content-Length", "4")
			_, _ = writer.Write([]byte("abcd"))
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Get(context.Background(), "assets/x/original", nil)
		require.NoError(t, err)

		stream, ok := result.(*immichhttp.StreamResult)
		require.True(t, ok)

		defer func() { _ = stream.Body.Close() }()

		assert.Equal(t, "image/jpeg", stream.ContentType)
		assert.Equal(t, int64(4), stream.ContentLength)

		data, err := io.ReadAll(stream.Body)
		require.NoError(t, err)
		assert.Equal(t, "abcd", string(data))
	})

	t.Run("stream flag overrides JSON content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, map[string]string{"id": "x"})
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Do(context.Background(), &immichhttp.Request{
			Method: immichhttp.MethodFetch,
			Path:   "assets/x/original",
			Stream: true,
		})
		require.NoError(t, err)

		stream, ok := result.(*immichhttp.StreamResult)
		require.True(t, ok)
		_ = stream.Body.Close()
	})

	t.Run("invalid JSON is a decode error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			_, _ = writer.Write([]byte("{not json"))
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		_, err := client.Get(context.Background(), "server/version", nil)
		require.Error(t, err)

		decodeErr := &immich.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "server/version", decodeErr.Path)
	})

	t.Run("empty JSON body is a decode error", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"", " \n\t"} {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(http.StatusOK)
				_, _ = writer.Write([]byte(body))
			}))

			client := immichhttp.NewClient(server.URL, "test-key")

			result, err := client.Get(context.Background(), "albums/a1", nil)
			server.Close()

			assert.Nil(t, result)
			require.ErrorIs(t, err, immich.ErrEmptyBody)

			decodeErr := &immich.DecodeError{}
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "albums/a1", decodeErr.Path)
		}
	})

	t.Run("empty body without content type returns success marker", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		result, err := client.Put(context.Background(), "albums/a1/users", map[string]string{"role": "viewer"})
		require.NoError(t, err)

		noContent, ok := result.(*immichhttp.NoContentResult)
		require.True(t, ok)
		assert.Equal(t, http.StatusOK, noContent.Status())
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, http.StatusOK, map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := immichhttp.NewClient(server.URL, "test-key", immichhttp.WithLogger(logger), immichhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "server/version", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "my-agent/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key", immichhttp.WithUserAgent("my-agent/2.0"))

		_, err := client.Get(context.Background(), "server/version", nil)
		require.NoError(t, err)
	})
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	t.Run("custom headers are merged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "test-key", request.Header.Get("x-api-key"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		_, err := client.Do(context.Background(), &immichhttp.Request{
			Method:  immichhttp.MethodFetch,
			Path:    "albums",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
	})

	t.Run("per-call headers cannot replace the API key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, []string{"test-key"}, request.Header.Values("X-Api-Key"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := immichhttp.NewClient(server.URL, "test-key")

		_, err := client.Do(context.Background(), &immichhttp.Request{
			Method:  immichhttp.MethodFetch,
			Path:    "albums",
			Headers: map[string]string{"X-API-KEY": "other", "x-api-key": ""},
		})
		require.NoError(t, err)
	})
}

func TestClient_URLComposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		path    string
	}{
		{name: "plain", baseURL: "", path: "albums"},
		{name: "leading slash", baseURL: "", path: "/albums"},
		{name: "both slashes", baseURL: "", path: "/albums/"},
		{name: "trailing base slash", baseURL: "/", path: "albums"},
		{name: "many slashes", baseURL: "//", path: "//albums//"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/api/albums", request.URL.Path)
				writer.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := immichhttp.NewClient(server.URL+testCase.baseURL, "test-key")
			assert.Equal(t, server.URL+"/api", client.APIRoot())

			_, err := client.Get(context.Background(), testCase.path, nil)
			require.NoError(t, err)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		json     bool
		message  string
		sentinel error
	}{
		{
			name:     "message string",
			status:   http.StatusNotFound,
			body:     `{"message":"Album not found","statusCode":404}`,
			json:     true,
			message:  "Album not found",
			sentinel: immich.ErrNotFound,
		},
		{
			name:     "message list",
			status:   http.StatusBadRequest,
			body:     `{"message":["albumName must be a string","id must be a UUID"]}`,
			json:     true,
			message:  "albumName must be a string; id must be a UUID",
			sentinel: immich.ErrBadRequest,
		},
		{
			name:     "non-JSON body",
			status:   http.StatusBadGateway,
			body:     "<html>bad gateway</html>",
			message:  "502 Bad Gateway",
			sentinel: immich.ErrServerError,
		},
		{
			name:     "JSON without message",
			status:   http.StatusUnauthorized,
			body:     `{"error":"Unauthorized"}`,
			json:     true,
			message:  "401 Unauthorized",
			sentinel: immich.ErrUnauthorized,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			attempts := 0

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts++

				if testCase.json {
					writer.Header().Set("Content-Type", "application/json")
				}

				writer.WriteHeader(testCase.status)
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := immichhttp.NewClient(server.URL, "test-key")

			result, err := client.Get(context.Background(), "albums/missing", nil)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, 1, attempts) // Should not retry

			apiErr := &immich.APIError{}
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, testCase.status, apiErr.StatusCode)
			assert.Equal(t, testCase.message, apiErr.Message)
			require.ErrorIs(t, err, testCase.sentinel)
			assert.Equal(t, testCase.status, immich.StatusCode(err))
		})
	}
}

func TestClient_ReasonPhrase(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = listener.Close() }()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}

		defer func() { _ = conn.Close() }()

		_, _ = http.ReadRequest(bufio.NewReader(conn))
		_, _ = conn.Write([]byte("HTTP/1.1 502 Upstream Unavailable\r\nContent-Type: text/html\r\nContent-Length: 6\r\nConnection: close\r\n\r\n<html>"))
	}()

	client := immichhttp.NewClient("http://"+listener.Addr().String(), "test-key")

	_, err = client.Get(context.Background(), "albums", nil)

	apiErr := &immich.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "502 Upstream Unavailable", apiErr.Message)
	require.ErrorIs(t, err, immich.ErrServerError)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	client := immichhttp.NewClient("http://"+addr, "test-key")

	_, err = client.Get(context.Background(), "server/version", nil)
	require.Error(t, err)
	assert.True(t, immich.IsTransport(err))
	assert.Equal(t, 0, immich.StatusCode(err))

	transportErr := &immich.TransportError{}
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "GET", transportErr.Method)
	assert.Equal(t, "server/version", transportErr.Path)
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := immichhttp.NewClient(server.URL, "test-key")

	_, err := client.Get(ctx, "server/version", nil)
	require.Error(t, err)
	assert.True(t, immich.IsTransport(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		method  string
		hasBody bool
		fn      func(*immichhttp.Client, context.Context) (immichhttp.Result, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:    "POST",
			method:  "POST",
			hasBody: true,
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:    "PUT",
			method:  "PUT",
			hasBody: true,
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:    "PATCH",
			method:  "PATCH",
			hasBody: true,
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.Delete(ctx, "/test")
			},
		},
		{
			name:    "DELETE with body",
			method:  "DELETE",
			hasBody: true,
			fn: func(c *immichhttp.Client, ctx context.Context) (immichhttp.Result, error) {
				return c.DeleteWithBody(ctx, "/test", map[string]string{"key": "value"})
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/api/test", request.URL.Path)

				data, _ := io.ReadAll(request.Body)
				if testCase.hasBody {
					assert.JSONEq(t, `{"key":"value"}`, string(data))
				} else {
					assert.Empty(t, data)
				}

				writer.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			client := immichhttp.NewClient(server.URL, "test-key")
			result, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 204, result.Status())
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("no content leaves target untouched", func(t *testing.T) {
		t.Parallel()

		target := map[string]string{"keep": "me"}
		require.NoError(t, immichhttp.Decode(&immichhttp.NoContentResult{StatusCode: 204}, &target))
		assert.Equal(t, "me", target["keep"])
	})

	t.Run("stream is rejected and closed", func(t *testing.T) {
		t.Parallel()

		body := &closeRecorder{}

		err := immichhttp.Decode(&immichhttp.StreamResult{Body: body}, &struct{}{})
		require.ErrorIs(t, err, immich.ErrUnexpectedStream)
		assert.True(t, body.closed)
	})

	t.Run("shape mismatch is a decode error", func(t *testing.T) {
		t.Parallel()

		var target []string

		err := immichhttp.Decode(&immichhttp.JSONResult{Body: json.RawMessage(`{"a":1}`)}, &target)

		decodeErr := &immich.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestParseContentLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1024), immichhttp.ParseContentLength("1024"))
	assert.Equal(t, int64(0), immichhttp.ParseContentLength(""))
	assert.Equal(t, int64(0), immichhttp.ParseContentLength("abc"))
	assert.Equal(t, int64(0), immichhttp.ParseContentLength("-5"))
}

type closeRecorder struct {
	closed bool
}

func (c *closeRecorder) Read([]byte) (int, error) { return 0, io.EOF }

func (c *closeRecorder) Close() error {
	c.closed = true

	return nil
}
