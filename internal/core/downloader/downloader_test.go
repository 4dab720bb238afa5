// Package downloader_test contains tests for the downloader package.
package downloader_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/dgst/internal/core/downloader"
)

func TestDownloadFile_Success(t *testing.T) {
	t.Parallel()
	expectedContent := "Hello, dgst!"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(expectedContent))
		assert.NoError(t, err, "Failed to write response in mock server")
	}))
	defer server.Close()

	content, err := downloader.DownloadFile(context.Background(), server.URL)
	require.NoError(t, err, "DownloadFile returned an unexpected error")
	assert.Equal(t, []byte(expectedContent), content, "Downloaded content does not match expected content")
}

func TestDownloadFile_HTTPErrorNotFound(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := downloader.DownloadFile(context.Background(), server.URL)
	require.Error(t, err, "DownloadFile should have returned an error for 404")
	assert.Contains(t, err.Error(), "failed to download from", "Error message mismatch")
	assert.Contains(t, err.Error(), "received status code 404", "Error message mismatch for status code")
}

func TestDownloadFile_HTTPErrorInternalServer(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := downloader.DownloadFile(context.Background(), server.URL)
	require.Error(t, err, "DownloadFile should have returned an error for 500")
	assert.Contains(t, err.Error(), "received status code 500", "Error message mismatch for status code")
}

func TestDownloadFile_InvalidURL(t *testing.T) {
	t.Parallel()
	invalidURL := "://missing-scheme"

	_, err := downloader.DownloadFile(context.Background(), invalidURL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to build GET request to %s", invalidURL))
}

func TestDownloadFile_ContextCanceled(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := downloader.DownloadFile(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to perform GET request to %s", server.URL))
}

func TestDownloadFile_ReadBodyError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("webserver doesn't support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("failed to hijack connection: %v", err)
			return
		}
		// Promise 100 bytes, send a few, then drop the connection.
		_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\npartial data"))
		_ = conn.Close()
	}))
	defer server.Close()

	_, err := downloader.DownloadFile(context.Background(), server.URL)
	require.Error(t, err, "DownloadFile should have returned an error when reading the body fails")
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to read response body from %s", server.URL))
}
