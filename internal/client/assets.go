package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/guanana/immich-lib/internal/constants"
	"github.com/guanana/immich-lib/internal/http"
	"github.com/guanana/immich-lib/pkg/immich"
)

// defaultDeviceID identifies uploads made by this library.
const defaultDeviceID = "immich-lib-go"

// AssetsClient implements the immich.AssetsClient interface.
type AssetsClient struct {
	httpClient *http.Client
	logger     immich.Logger
}

// NewAssetsClient creates a new AssetsClient.
func NewAssetsClient(httpClient *http.Client, logger immich.Logger) *AssetsClient {
	if logger == nil {
		logger = immich.NopLogger{}
	}

	return &AssetsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// List returns the assets matched by a metadata search. A nil filter matches
// every asset visible to the API key. A response that lacks the
// assets.items envelope yields an empty slice.
func (c *AssetsClient) List(ctx context.Context, filter *immich.AssetSearch) ([]immich.Asset, error) {
	if filter == nil {
		filter = &immich.AssetSearch{}
	}

	result, err := c.httpClient.Post(ctx, constants.APIPathSearchMetadata, filter)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	return extractSearchItems(result), nil
}

// extractSearchItems digs assets.items out of a search envelope. Any missing
// or mis-shaped level produces an empty, non-nil slice.
func extractSearchItems(result http.Result) []immich.Asset {
	empty := []immich.Asset{}

	jsonResult, ok := result.(*http.JSONResult)
	if !ok {
		if stream, isStream := result.(*http.StreamResult); isStream {
			_ = stream.Body.Close()
		}

		return empty
	}

	var envelope map[string]json.RawMessage
	if json.Unmarshal(jsonResult.Body, &envelope) != nil {
		return empty
	}

	var page map[string]json.RawMessage
	if json.Unmarshal(envelope["assets"], &page) != nil {
		return empty
	}

	var items []immich.Asset
	if json.Unmarshal(page["items"], &items) != nil || items == nil {
		return empty
	}

	return items
}

// Get retrieves asset details.
func (c *AssetsClient) Get(ctx context.Context, assetID string) (*immich.Asset, error) {
	result, err := c.httpClient.Get(ctx, constants.APIPathAssets+"/"+assetID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	var asset immich.Asset

	err = http.Decode(result, &asset)
	if err != nil {
		return nil, fmt.Errorf("parsing asset response: %w", err)
	}

	return &asset, nil
}

// Update changes asset metadata.
func (c *AssetsClient) Update(ctx context.Context, assetID string, request *immich.AssetUpdateRequest) (*immich.Asset, error) {
	result, err := c.httpClient.Put(ctx, constants.APIPathAssets+"/"+assetID, request)
	if err != nil {
		return nil, fmt.Errorf("updating asset: %w", err)
	}

	var asset immich.Asset

	err = http.Decode(result, &asset)
	if err != nil {
		return nil, fmt.Errorf("parsing asset response: %w", err)
	}

	return &asset, nil
}

// Delete trashes assets, or removes them permanently when Force is set.
func (c *AssetsClient) Delete(ctx context.Context, request *immich.AssetDeleteRequest) error {
	_, err := c.httpClient.DeleteWithBody(ctx, constants.APIPathAssets, request)
	if err != nil {
		return fmt.Errorf("deleting assets: %w", err)
	}

	return nil
}

// Download opens the original file of an asset. The caller must close the
// returned Download.
func (c *AssetsClient) Download(ctx context.Context, assetID string) (*immich.Download, error) {
	result, err := c.httpClient.Do(ctx, &http.Request{
		Method: http.MethodFetch,
		Path:   constants.APIPathAssets + "/" + assetID + "/original",
		Stream: true,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading asset: %w", err)
	}

	return toDownload(result), nil
}

// ViewThumbnail opens a rendition of an asset. size is one of the
// immich.ThumbnailSize constants.
func (c *AssetsClient) ViewThumbnail(ctx context.Context, assetID, size string, edited bool) (*immich.Download, error) {
	if size == "" {
		size = immich.ThumbnailSizePreview
	}

	query := url.Values{}
	query.Set("size", size)
	query.Set("edited", strconv.FormatBool(edited))

	result, err := c.httpClient.Do(ctx, &http.Request{
		Method: http.MethodFetch,
		Path:   constants.APIPathAssets + "/" + assetID + "/thumbnail",
		Query:  query,
		Stream: true,
	})
	if err != nil {
		return nil, fmt.Errorf("viewing asset thumbnail: %w", err)
	}

	return toDownload(result), nil
}

func toDownload(result http.Result) *immich.Download {
	stream, ok := result.(*http.StreamResult)
	if !ok {
		return &immich.Download{ReadCloser: io.NopCloser(bytes.NewReader(nil))}
	}

	return &immich.Download{
		ReadCloser:    stream.Body,
		ContentType:   stream.ContentType,
		ContentLength: stream.ContentLength,
	}
}

// DownloadToFile writes the original file of an asset to destination,
// replacing any existing file. Failures are logged and reported as false.
func (c *AssetsClient) DownloadToFile(ctx context.Context, assetID, destination string, progress immich.ProgressReporter) bool {
	if progress == nil {
		progress = immich.NopProgress{}
	}

	err := c.downloadToFile(ctx, assetID, destination, progress)
	if err != nil {
		c.logger.Error("Error downloading asset", map[string]interface{}{
			"asset_id":    assetID,
			"destination": destination,
			"error":       err.Error(),
		})

		return false
	}

	return true
}

func (c *AssetsClient) downloadToFile(ctx context.Context, assetID, destination string, progress immich.ProgressReporter) error {
	download, err := c.Download(ctx, assetID)
	if err != nil {
		return err
	}

	defer func() { _ = download.Close() }()

	file, err := os.Create(filepath.Clean(destination))
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}

	progress.Start(filepath.Base(destination), download.ContentLength)
	defer progress.Finish()

	_, err = CopyChunks(file, download, progress)
	closeErr := file.Close()

	if err != nil {
		return err
	}

	if closeErr != nil {
		return fmt.Errorf("closing destination file: %w", closeErr)
	}

	return nil
}

// CopyChunks copies src to dst in DownloadChunkSize reads, skipping empty
// reads and reporting every written chunk to progress.
func CopyChunks(dst io.Writer, src io.Reader, progress immich.ProgressReporter) (int64, error) {
	buf := make([]byte, constants.DownloadChunkSize)

	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)

			if err != nil {
				return written, fmt.Errorf("writing chunk: %w", err)
			}

			if w != n {
				return written, fmt.Errorf("writing chunk: %w", io.ErrShortWrite)
			}

			progress.Advance(int64(n))
		}

		if errors.Is(readErr, io.EOF) {
			return written, nil
		}

		if readErr != nil {
			return written, fmt.Errorf("reading chunk: %w", readErr)
		}
	}
}

// Upload sends a local file as a new asset using a multipart form.
func (c *AssetsClient) Upload(ctx context.Context, request *immich.AssetUploadRequest) (*immich.AssetUploadResult, error) {
	if request == nil || request.FilePath == "" {
		return nil, immich.ErrUploadFileRequired
	}

	body, contentType, err := buildUploadForm(request)
	if err != nil {
		return nil, fmt.Errorf("preparing upload: %w", err)
	}

	result, err := c.httpClient.Do(ctx, &http.Request{
		Method:      http.MethodCreate,
		Path:        constants.APIPathAssets,
		RawBody:     body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading asset: %w", err)
	}

	var uploaded immich.AssetUploadResult

	err = http.Decode(result, &uploaded)
	if err != nil {
		return nil, fmt.Errorf("parsing upload response: %w", err)
	}

	return &uploaded, nil
}

func buildUploadForm(request *immich.AssetUploadRequest) ([]byte, string, error) {
	path := filepath.Clean(request.FilePath)

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading file info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, "", fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening file: %w", err)
	}

	defer func() { _ = file.Close() }()

	fields := uploadFields(request, info)

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		err = writer.WriteField(field[0], field[1])
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", field[0], err)
		}
	}

	part, err := writer.CreateFormFile(constants.UploadFormField, filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}

	_, err = io.Copy(part, file)
	if err != nil {
		return nil, "", fmt.Errorf("copying file: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// uploadFields returns the form fields in a stable order, filling defaults
// from the file itself.
func uploadFields(request *immich.AssetUploadRequest, info os.FileInfo) [][2]string {
	deviceAssetID := request.DeviceAssetID
	if deviceAssetID == "" {
		deviceAssetID = info.Name() + "-" + strconv.FormatInt(info.Size(), 10)
	}

	deviceID := request.DeviceID
	if deviceID == "" {
		deviceID = defaultDeviceID
	}

	modified := request.FileModifiedAt
	if modified.IsZero() {
		modified = info.ModTime()
	}

	created := request.FileCreatedAt
	if created.IsZero() {
		created = modified
	}

	fields := [][2]string{
		{"deviceAssetId", deviceAssetID},
		{"deviceId", deviceID},
		{"fileCreatedAt", created.UTC().Format(time.RFC3339)},
		{"fileModifiedAt", modified.UTC().Format(time.RFC3339)},
		{"isFavorite", strconv.FormatBool(request.IsFavorite)},
	}

	if request.Duration != "" {
		fields = append(fields, [2]string{"duration", request.Duration})
	}

	return fields
}
