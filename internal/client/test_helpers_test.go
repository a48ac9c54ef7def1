package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

const testAPIKey = "test-api-key"

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	return newFromHTTP(internalhttp.NewClient(baseURL, testAPIKey))
}

// recordingLogger keeps every entry for assertions.
type recordingLogger struct {
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: "debug", msg: msg, fields: fields})
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: "info", msg: msg, fields: fields})
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: "warn", msg: msg, fields: fields})
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.entries = append(l.entries, logEntry{level: "error", msg: msg, fields: fields})
}

func (l *recordingLogger) messages(level string) []string {
	var msgs []string

	for _, entry := range l.entries {
		if entry.level == level {
			msgs = append(msgs, entry.msg)
		}
	}

	return msgs
}

// NewTestClientWithLogger creates a test client that records log output.
func NewTestClientWithLogger(baseURL string) (*Client, *recordingLogger) {
	logger := &recordingLogger{}

	return newFromHTTP(internalhttp.NewClient(baseURL, testAPIKey, internalhttp.WithLogger(logger))), logger
}

func writeJSON(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(v)
}

func writeAPIError(writer http.ResponseWriter, status int, message string) {
	writeJSON(writer, status, map[string]interface{}{
		"message":    message,
		"statusCode": status,
	})
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     *TResponse
	WantErr      bool
	ErrMessage   string
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				assert.Equal(t, testAPIKey, request.Header.Get("x-api-key"))

				if testCase.WantErr {
					writeAPIError(writer, testCase.StatusCode, "Resource not found")

					return
				}

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Equal(t, testCase.StatusCode, immich.StatusCode(err))
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testCase.Response, result)
			}
		})
	}
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "DELETE", request.Method)

				if testCase.WantErr {
					writeAPIError(writer, testCase.StatusCode, "Resource not found")

					return
				}

				writer.WriteHeader(testCase.StatusCode)
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			err := deleteFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// captureRequest decodes the JSON body of request into a generic map.
func captureRequest(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	err := json.NewDecoder(request.Body).Decode(&body)
	require.NoError(t, err)

	return body
}

// endpointCase describes a single request/response exchange for a resource
// method.
type endpointCase struct {
	Name           string
	ExpectedMethod string
	ExpectedPath   string
	ExpectedQuery  url.Values
	ExpectedBody   map[string]interface{}
	StatusCode     int
	Response       interface{}
	Call           func(ctx context.Context, c *Client) (interface{}, error)
	Check          func(t *testing.T, result interface{})
}

// RunEndpointTests runs each case against its own test server.
func RunEndpointTests(t *testing.T, tests []endpointCase) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedMethod, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, testAPIKey, request.Header.Get("x-api-key"))

				for key := range testCase.ExpectedQuery {
					assert.Equal(t, testCase.ExpectedQuery.Get(key), request.URL.Query().Get(key), "query %s", key)
				}

				if testCase.ExpectedBody != nil {
					assert.Equal(t, testCase.ExpectedBody, captureRequest(t, request))
				}

				status := testCase.StatusCode

				if testCase.Response == nil {
					if status == 0 {
						status = http.StatusNoContent
					}

					writer.WriteHeader(status)

					return
				}

				if status == 0 {
					status = http.StatusOK
				}

				writeJSON(writer, status, testCase.Response)
			}))
			defer server.Close()

			result, err := testCase.Call(context.Background(), NewTestClient(server.URL))
			require.NoError(t, err)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}
