// Package http downloads feed indexes and package archives.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/fsutil"
)

// IndexFileName is appended to a feed URL to locate its index.
const IndexFileName = "index.json"

// Client handles HTTP operations for feeds.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient creates a new HTTP client for feed operations.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: "solpkg/1.0",
	}
}

// DownloadIndex fetches <feedURL>/index.json into filePath. When the server
// answers with Last-Modified the file's mtime is set to it so cache age reflects
// the feed rather than the download.
func (c *Client) DownloadIndex(ctx context.Context, feedURL string, filePath string) error {
	indexURL, err := BuildIndexURL(feedURL)
	if err != nil {
		return err
	}

	resp, err := c.get(ctx, indexURL, "application/json")
	if err != nil {
		return errors.Wrap(err, "failed to download index")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.writeBody(resp.Body, filePath); err != nil {
		return err
	}

	if lastModifiedStr := resp.Header.Get("Last-Modified"); lastModifiedStr != "" {
		if modifiedTime, err := http.ParseTime(lastModifiedStr); err == nil {
			if err := os.Chtimes(filePath, modifiedTime, modifiedTime); err != nil {
				return errors.Wrap(err, "could not change times on index file")
			}
		}
	}
	return nil
}

// DownloadFile fetches fileURL into filePath.
func (c *Client) DownloadFile(ctx context.Context, fileURL string, filePath string) error {
	resp, err := c.get(ctx, fileURL, "")
	if err != nil {
		return errors.Wrapf(err, "failed to download %s", fileURL)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.writeBody(resp.Body, filePath)
}

func (c *Client) get(ctx context.Context, target string, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s: %d: %w", target, resp.StatusCode, errors.ErrUnexpectedStatus)
	}
	return resp, nil
}

func (c *Client) writeBody(body io.Reader, filePath string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), fsutil.DirModeSecure); err != nil {
		return errors.Wrap(err, "could not create download directory")
	}
	if err := os.WriteFile(filePath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrapf(err, "could not write %s", filePath)
	}
	return nil
}

// BuildIndexURL constructs the index URL from a feed base URL.
func BuildIndexURL(feedURL string) (string, error) {
	parsedURL, err := url.Parse(feedURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("%q: %w", feedURL, errors.ErrFeedURLInvalid)
	}

	parsedURL.Path, err = url.JoinPath(parsedURL.Path, IndexFileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to build index URL")
	}
	return parsedURL.String(), nil
}
