package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexURL(t *testing.T) {
	got, err := BuildIndexURL("https://feed.example.com/v1/")
	require.NoError(t, err)
	assert.Equal(t, "https://feed.example.com/v1/index.json", got)

	_, err = BuildIndexURL("not a url")
	assert.ErrorIs(t, err, errors.ErrFeedURLInvalid)
}

func TestDownloadIndex(t *testing.T) {
	modified := time.Date(2024, 8, 16, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed/index.json", r.URL.Path)
		assert.Equal(t, "solpkg/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Last-Modified", modified.Format(http.TimeFormat))
		_, _ = w.Write([]byte(`{"format_version":"1"}`))
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "feeds", "main.json")
	c := NewClient(5 * time.Second)
	require.NoError(t, c.DownloadIndex(context.Background(), srv.URL+"/feed", target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"format_version":"1"}`, string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modified))
}

func TestDownloadFile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient(5 * time.Second)
	err := c.DownloadFile(context.Background(), srv.URL+"/pkg.zip", filepath.Join(t.TempDir(), "pkg.zip"))
	assert.ErrorIs(t, err, errors.ErrUnexpectedStatus)
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "cache", "pkg.zip")
	c := NewClient(5 * time.Second)
	require.NoError(t, c.DownloadFile(context.Background(), srv.URL+"/pkg.zip", target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "archive-bytes", string(data))
}
