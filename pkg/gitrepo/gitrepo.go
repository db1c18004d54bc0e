// Package gitrepo installs and updates git-based plugins and themes. It never
// overwrites a destination it does not recognize: an existing directory that
// is not a repository is left untouched.
package gitrepo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/internal/run"
)

// Status describes what Ensure did to the destination.
type Status string

const (
	// StatusCloned means a fresh shallow clone was created.
	StatusCloned Status = "cloned"
	// StatusUpdated means an existing repository was fast-forwarded.
	StatusUpdated Status = "updated"
	// StatusUpdateConflict means the repository exists but could not be
	// fast-forwarded; the checkout is untouched and still usable.
	StatusUpdateConflict Status = "update-conflict"
	// StatusSkippedNonRepo means the destination exists but is not a
	// repository, so it was deliberately left alone.
	StatusSkippedNonRepo Status = "skipped-non-repo"
	// StatusFailed means the git invocation itself failed.
	StatusFailed Status = "failed"
)

// Client wraps the git command line.
type Client struct {
	Runner run.Runner
}

// New returns a Client backed by the live git binary.
func New() *Client {
	return &Client{Runner: run.Exec{}}
}

// IsRepo reports whether dest looks like a git working tree.
func IsRepo(dest string) bool {
	info, err := os.Stat(filepath.Join(dest, ".git"))
	return err == nil && info.IsDir()
}

// Ensure brings dest to a cloned, up-to-date state for url.
//
// An existing repository is fast-forwarded; a fast-forward conflict is a
// warning, not an error, because a locally diverged plugin checkout is the
// operator's business. An existing non-repository path is never modified.
func (c *Client) Ensure(ctx context.Context, url, dest string) (Status, error) {
	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			log.Warnf("destination %s exists and is not a directory, leaving it untouched", dest)
			return StatusSkippedNonRepo, nil
		}
		if !IsRepo(dest) {
			log.Warnf("destination %s exists but is not a git repository, leaving it untouched", dest)
			return StatusSkippedNonRepo, nil
		}
		return c.update(ctx, dest)
	}

	return c.clone(ctx, url, dest)
}

func (c *Client) clone(ctx context.Context, url, dest string) (Status, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return StatusFailed, errors.Wrapf(err, "failed to create parent directory for %s", dest)
	}
	if err := c.Runner.Run(ctx, "git", "clone", "--depth=1", url, dest); err != nil {
		return StatusFailed, errors.Wrapf(err, "failed to clone %s", url)
	}
	return StatusCloned, nil
}

func (c *Client) update(ctx context.Context, dest string) (Status, error) {
	if err := c.Runner.Run(ctx, "git", "-C", dest, "pull", "--ff-only"); err != nil {
		// Diverged history or a dirty tree; the checkout still works.
		log.WithError(err).Warnf("fast-forward update of %s failed", dest)
		return StatusUpdateConflict, nil
	}
	return StatusUpdated, nil
}
