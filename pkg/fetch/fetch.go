// Package fetch downloads asset files (fonts, .deb packages, installer
// scripts). Downloads land in a temporary file and are renamed into place on
// success, so an interrupted fetch leaves no partial destination file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/pkg/httpclient"
)

const maxAttempts = 3

// Download fetches url into destPath. Server errors (5xx) are retried with
// linear backoff; client errors are not. The destination directory is
// created when missing.
func Download(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create destination directory")
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	client := httpclient.New()
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			log.Debugf("retrying download of %s (attempt %d)", url, attempt+1)
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fetchOnce(ctx, client, url, tmpFile)
		if lastErr == nil {
			break
		}
		var retryable *retryableError
		if !errors.As(lastErr, &retryable) {
			return lastErr
		}
	}
	if lastErr != nil {
		return errors.Wrapf(lastErr, "download failed after %d attempts", maxAttempts)
	}

	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary file")
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return errors.Wrapf(err, "failed to move download to %s", destPath)
	}
	return nil
}

// DownloadIfMissing fetches url into destPath unless the file already
// exists. Returns true when a download happened.
func DownloadIfMissing(ctx context.Context, url, destPath string) (bool, error) {
	if info, err := os.Stat(destPath); err == nil && info.Mode().IsRegular() {
		log.Debugf("already present, skipping: %s", destPath)
		return false, nil
	}
	if err := Download(ctx, url, destPath); err != nil {
		return false, err
	}
	return true, nil
}

// retryableError marks a failure worth another attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func fetchOnce(ctx context.Context, client *http.Client, url string, dest *os.File) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return &retryableError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
		if resp.StatusCode >= 500 {
			return &retryableError{err: err}
		}
		return err
	}

	// Rewind in case a previous attempt wrote partial data.
	if _, err := dest.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to rewind temporary file")
	}
	if err := dest.Truncate(0); err != nil {
		return errors.Wrap(err, "failed to truncate temporary file")
	}
	if _, err := io.Copy(dest, resp.Body); err != nil {
		return &retryableError{err: errors.Wrap(err, "failed to read response body")}
	}
	return nil
}
