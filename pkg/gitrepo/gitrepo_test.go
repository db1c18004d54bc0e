package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workbench-install/workbench/internal/run"
)

func TestEnsureClonesWhenAbsent(t *testing.T) {
	fake := &run.Fake{}
	c := &Client{Runner: fake}
	dest := filepath.Join(t.TempDir(), "plugins", "zsh-autosuggestions")

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", dest)
	require.NoError(t, err)
	assert.Equal(t, StatusCloned, status)
	assert.Equal(t, []string{
		"git clone --depth=1 https://example.com/repo.git " + dest,
	}, fake.CommandLines())
}

func TestEnsureFastForwardsExistingRepo(t *testing.T) {
	fake := &run.Fake{}
	c := &Client{Runner: fake}
	dest := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dest, ".git"), 0755))

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", dest)
	require.NoError(t, err)
	assert.Equal(t, StatusUpdated, status)
	assert.Equal(t, []string{
		"git -C " + dest + " pull --ff-only",
	}, fake.CommandLines())
}

func TestEnsureFastForwardConflictIsNotFatal(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dest, ".git"), 0755))

	fake := &run.Fake{Fail: map[string]error{"git -C": assert.AnError}}
	c := &Client{Runner: fake}

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", dest)
	require.NoError(t, err)
	assert.Equal(t, StatusUpdateConflict, status)
}

func TestEnsureLeavesNonRepoDirUntouched(t *testing.T) {
	fake := &run.Fake{}
	c := &Client{Runner: fake}

	dest := t.TempDir()
	marker := filepath.Join(dest, "user-data.txt")
	require.NoError(t, os.WriteFile(marker, []byte("precious"), 0644))

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", dest)
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedNonRepo, status)
	assert.Empty(t, fake.Calls, "no git command may run against a non-repo destination")

	// The directory and its content are intact.
	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "precious", string(data))
}

func TestEnsureLeavesNonDirUntouched(t *testing.T) {
	fake := &run.Fake{}
	c := &Client{Runner: fake}

	dest := filepath.Join(t.TempDir(), "a-file")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0644))

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", dest)
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedNonRepo, status)
	assert.Empty(t, fake.Calls)
}

func TestEnsureCloneFailure(t *testing.T) {
	fake := &run.Fake{Fail: map[string]error{"git clone": assert.AnError}}
	c := &Client{Runner: fake}

	status, err := c.Ensure(context.Background(), "https://example.com/repo.git", filepath.Join(t.TempDir(), "dest"))
	assert.Error(t, err)
	assert.Equal(t, StatusFailed, status)
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsRepo(dir))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	assert.True(t, IsRepo(dir))
}
