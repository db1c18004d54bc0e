package shellpatch

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/pkg/target"
)

// fileLocks serializes writers per path so that parallel targets can never
// interleave appends to the same startup file.
var (
	fileLocksMu sync.Mutex
	fileLocks   = make(map[string]*sync.Mutex)
)

func lockFor(path string) *sync.Mutex {
	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()
	if m, ok := fileLocks[path]; ok {
		return m
	}
	m := &sync.Mutex{}
	fileLocks[path] = m
	return m
}

// Apply patches the file named by p.File according to p.Mode, creating the
// file (and its directory) when absent. Unrelated content is never reordered
// or removed. Returns whether the file changed.
func Apply(p target.Patch) (bool, error) {
	mu := lockFor(p.File)
	mu.Lock()
	defer mu.Unlock()

	mode := os.FileMode(0644)
	if info, err := os.Stat(p.File); err == nil {
		mode = info.Mode().Perm()
	}

	data, err := os.ReadFile(p.File)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", p.File)
	}
	content := string(data)

	var patched string
	var changed bool
	switch p.Mode {
	case target.AppendOnce:
		patched, changed = AppendOnce(content, p.Marker, p.Text)
	case target.ReplaceLine:
		patched, changed = ReplaceLine(content, p.Key, p.Text)
	default:
		return false, errors.Errorf("unknown patch mode: %q", p.Mode)
	}

	if !changed {
		return false, nil
	}

	if err := writeFileAtomic(p.File, []byte(patched), mode); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileAtomic writes data via a temporary file in the target directory
// followed by a rename, so a crash can never leave a half-written rc file.
// The mode of a pre-existing file is carried through the rewrite.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "failed to write temporary file")
	}
	if err := tmpFile.Chmod(mode); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "failed to set permissions")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	success = true
	return nil
}
