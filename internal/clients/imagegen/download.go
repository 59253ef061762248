package imagegen

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/KirkDiggler/deck-forge/internal/errors"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// HTTPDownloader implements Downloader with a plain GET
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader creates a downloader whose requests time out after timeout
func NewHTTPDownloader(timeout time.Duration) *HTTPDownloader {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &HTTPDownloader{client: &http.Client{Timeout: timeout}}
}

// Download returns the response body of a successful GET
func (d *HTTPDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.InvalidArgument("image url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid image url")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "image download failed").
			WithMeta(MetaStatus, 0).
			WithMeta(MetaBody, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.Unavailablef("image download returned %d", resp.StatusCode).
			WithMeta(MetaStatus, resp.StatusCode).
			WithMeta(MetaBody, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read image body")
	}
	return data, nil
}
