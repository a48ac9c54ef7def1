package immich

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for HTTP status classification.
// Use errors.Is(err, immich.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("immich: bad request")
	ErrUnauthorized = errors.New("immich: unauthorized")
	ErrForbidden    = errors.New("immich: forbidden")
	ErrNotFound     = errors.New("immich: not found")
	ErrConflict     = errors.New("immich: conflict")
	ErrThrottled    = errors.New("immich: throttled")
	ErrServerError  = errors.New("immich: server error")
	ErrHTTPStatus   = errors.New("immich: unexpected HTTP status")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrServerURLRequired     = errors.New("server URL is required")
	ErrAPIKeyRequired        = errors.New("API key is required")
	ErrAlbumNotFound         = errors.New("album not found")
	ErrAlbumIdentifierNeeded = errors.New("album name or ID is required")
	ErrUnexpectedStream      = errors.New("expected a JSON response but the server returned a binary stream")
	ErrUploadFileRequired    = errors.New("upload requires a file path")
	ErrJobCommandRequired    = errors.New("job command is required")
	ErrSkipTLSOnlyInDev      = errors.New("skipping TLS verification is only allowed in development mode")
	ErrPingFailed            = errors.New("server did not answer ping")
	ErrEmptyBody             = errors.New("response declared as JSON has an empty body")
)

// APIError is a non-2xx response from the Immich server. Message carries the
// server-provided "message" field when the body was JSON, otherwise the
// status line.
type APIError struct {
	StatusCode int    `json:"statusCode" yaml:"status_code"`
	Message    string `json:"message"    yaml:"message"`
	Err        error  `json:"-"          yaml:"-"` // sentinel, for errors.Is()
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("immich API error (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// TransportError is a network-level failure (DNS, refused connection,
// timeout, cancellation) raised before any HTTP status was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("immich: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response declared as JSON that could not be parsed.
type DecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("immich: decoding response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError from a status code, the raw status line
// (such as "502 Bad Gateway") and the response body. The message is the
// body's "message" field if present (string or list of strings), falling
// back to the status line the server sent.
func NewAPIError(statusCode int, status string, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    ExtractErrorMessage(statusCode, status, body),
		Err:        ClassifyStatus(statusCode),
	}
}

// ExtractErrorMessage returns the human-readable message of an error body.
func ExtractErrorMessage(statusCode int, status string, body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}

	err := json.Unmarshal(body, &payload)
	if err == nil && len(payload.Message) > 0 {
		var single string
		if json.Unmarshal(payload.Message, &single) == nil && single != "" {
			return single
		}

		// Validation failures come back as a list of messages.
		var many []string
		if json.Unmarshal(payload.Message, &many) == nil && len(many) > 0 {
			return strings.Join(many, "; ")
		}
	}

	if status = strings.TrimSpace(status); status != "" {
		return status
	}

	return fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode))
}

// ClassifyStatus maps an HTTP status code to a sentinel error.
func ClassifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return ErrHTTPStatus
	}
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// APIError.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}
