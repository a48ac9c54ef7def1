package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/pkg/immich"
)

// Method is the verb of a request.
type Method int

const (
	MethodFetch Method = iota
	MethodCreate
	MethodReplace
	MethodPartialUpdate
	MethodRemove
)

// String returns the HTTP method name.
func (m Method) String() string {
	switch m {
	case MethodCreate:
		return http.MethodPost
	case MethodReplace:
		return http.MethodPut
	case MethodPartialUpdate:
		return http.MethodPatch
	case MethodRemove:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Request describes a single API call. Path is relative to the API root.
// Body is JSON-encoded; RawBody is sent verbatim with ContentType and takes
// precedence over Body.
type Request struct {
	Method      Method
	Path        string
	Query       url.Values
	Body        interface{}
	RawBody     []byte
	ContentType string
	Headers     map[string]string
	Stream      bool
}

// Result is the outcome of a successful call: *JSONResult, *NoContentResult,
// or *StreamResult.
type Result interface {
	Status() int
	isResult()
}

// JSONResult holds a validated JSON response body.
type JSONResult struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage

	path string
}

func (r *JSONResult) Status() int { return r.StatusCode }
func (*JSONResult) isResult()     {}

// NoContentResult marks a successful response without a body.
type NoContentResult struct {
	StatusCode int
}

func (r *NoContentResult) Status() int { return r.StatusCode }
func (*NoContentResult) isResult()     {}

// OK always reports true.
func (*NoContentResult) OK() bool { return true }

// StreamResult is an unread response body. The caller must close Body.
type StreamResult struct {
	StatusCode    int
	Header        http.Header
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

func (r *StreamResult) Status() int { return r.StatusCode }
func (*StreamResult) isResult()     {}

// Client executes requests against an Immich API root.
type Client struct {
	baseURL    string
	apiRoot    string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	debug      bool
	logger     immich.Logger
	httpClient *http.Client
	executor   *retryablehttp.Client
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger immich.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPTimeout bounds the wait for response headers. Reading the body is
// not time-limited so large downloads are not cut off.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient uses the given client instead of a pooled default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// NewClient creates a new HTTP client for the server at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	trimmed := strings.TrimRight(baseURL, "/")

	client := &Client{
		baseURL:   trimmed,
		apiRoot:   trimmed + constants.APIPathSuffix,
		apiKey:    apiKey,
		userAgent: constants.DefaultUserAgent,
		timeout:   constants.DefaultHTTPTimeout,
		logger:    immich.NopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		transport := cleanhttp.DefaultPooledTransport()
		transport.ResponseHeaderTimeout = client.timeout
		transport.IdleConnTimeout = constants.IdleConnTimeout
		client.httpClient = &http.Client{Transport: transport}
	}

	executor := retryablehttp.NewClient()
	executor.HTTPClient = client.httpClient
	executor.Logger = nil
	executor.RetryMax = 0
	executor.CheckRetry = neverRetry
	executor.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.executor = executor

	return client
}

// neverRetry hands every outcome straight back to the caller.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// BaseURL returns the server URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIRoot returns the URL every request path is resolved against.
func (c *Client) APIRoot() string {
	return c.apiRoot
}

// Logger returns the configured logger.
func (c *Client) Logger() immich.Logger {
	return c.logger
}

// Do executes a request.
func (c *Client) Do(ctx context.Context, req *Request) (Result, error) {
	fullURL := c.buildURL(req.Path, req.Query)

	payload, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	var body interface{}
	if payload != nil {
		body = payload
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method.String(), fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.applyHeaders(httpReq.Header, req.Headers, contentType)

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method.String(),
			"url":    fullURL,
			"stream": req.Stream,
		})
	}

	start := time.Now()

	resp, err := c.executor.Do(httpReq)
	if err != nil {
		return nil, &immich.TransportError{Method: req.Method.String(), Path: req.Path, Err: err}
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":       resp.StatusCode,
			"content_type": resp.Header.Get("Content-Type"),
			"duration":     time.Since(start).String(),
		})
	}

	return c.handleResponse(req, resp)
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.apiRoot + "/" + strings.Trim(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

// applyHeaders merges default, per-call, and authentication headers. The API
// key is written last so it cannot be dropped or replaced.
func (c *Client) applyHeaders(header http.Header, extra map[string]string, contentType string) {
	header.Set("Accept", constants.ContentTypeJSON)
	header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	for key, value := range extra {
		header.Set(key, value)
	}

	header.Set(constants.HeaderAPIKey, c.apiKey)
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.RawBody != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		return req.RawBody, contentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}

	return data, constants.ContentTypeJSON, nil
}

func (c *Client) handleResponse(req *Request, resp *http.Response) (Result, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxErrorBodySize))
		apiErr := immich.NewAPIError(resp.StatusCode, resp.Status, body)

		c.logger.Debug("Immich API error", map[string]interface{}{
			"method":  req.Method.String(),
			"path":    req.Path,
			"status":  apiErr.StatusCode,
			"message": apiErr.Message,
		})

		return nil, apiErr
	}

	contentType := resp.Header.Get("Content-Type")
	declaredJSON := !req.Stream && isJSON(contentType)

	if resp.StatusCode == http.StatusNoContent || (!req.Stream && !declaredJSON && resp.ContentLength == 0) {
		_ = resp.Body.Close()

		return &NoContentResult{StatusCode: resp.StatusCode}, nil
	}

	if !declaredJSON {
		return &StreamResult{
			StatusCode:    resp.StatusCode,
			Header:        resp.Header,
			ContentType:   contentType,
			ContentLength: ParseContentLength(resp.Header.Get("Content-Length")),
			Body:          resp.Body,
		}, nil
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &immich.TransportError{Method: req.Method.String(), Path: req.Path, Err: err}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &immich.DecodeError{Path: req.Path, Err: immich.ErrEmptyBody}
	}

	var raw json.RawMessage

	err = json.Unmarshal(body, &raw)
	if err != nil {
		return nil, &immich.DecodeError{Path: req.Path, Err: err}
	}

	return &JSONResult{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
		path:       req.Path,
	}, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == constants.ContentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// ParseContentLength returns the declared length, or 0 when the header is
// absent or not a non-negative integer.
func ParseContentLength(value string) int64 {
	length, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || length < 0 {
		return 0
	}

	return length
}

// Decode unmarshals a JSON result into v. A NoContentResult leaves v
// untouched. A StreamResult is closed and rejected.
func Decode(result Result, v interface{}) error {
	switch r := result.(type) {
	case *JSONResult:
		err := json.Unmarshal(r.Body, v)
		if err != nil {
			return &immich.DecodeError{Path: r.path, Err: err}
		}

		return nil
	case *NoContentResult:
		return nil
	case *StreamResult:
		_ = r.Body.Close()

		return immich.ErrUnexpectedStream
	default:
		return immich.ErrUnexpectedStream
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodFetch, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodCreate, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodReplace, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodPartialUpdate, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodRemove, Path: path})
}

// DeleteWithBody performs a DELETE request carrying a JSON body.
func (c *Client) DeleteWithBody(ctx context.Context, path string, body interface{}) (Result, error) {
	return c.Do(ctx, &Request{Method: MethodRemove, Path: path, Body: body})
}
