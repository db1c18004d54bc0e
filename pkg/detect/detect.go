// Package detect decides whether a target is already present on the system
// by probing observable facts: a binary on PATH, a directory, or a file.
// Probes are side-effect-free and safe to repeat; an inconclusive probe is
// reported as absent so that a re-install attempt is preferred over a
// silent skip.
package detect

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/workbench-install/workbench/pkg/target"
)

// Detect reports whether the target is present. The first non-empty probe
// field (Command, Dir, File, Check) decides.
func Detect(t target.Target) bool {
	switch {
	case t.Probe.Command != "":
		return CommandOnPath(t.Probe.Command)
	case t.Probe.Dir != "":
		return DirExists(t.Probe.Dir)
	case t.Probe.File != "":
		return FileExists(t.Probe.File)
	case len(t.Probe.Check) > 0:
		return CheckSucceeds(t.Probe.Check[0], t.Probe.Check[1:]...)
	}
	return false
}

// CommandOnPath reports whether name resolves to an executable on PATH.
func CommandOnPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// CheckSucceeds reports whether the command runs and exits zero. Output is
// discarded; a missing binary counts as failure.
func CheckSucceeds(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// RequireCommand returns an error when a strictly required external command
// is missing. Callers treat this as fatal for the whole run.
func RequireCommand(name string) error {
	if !CommandOnPath(name) {
		return fmt.Errorf("required command not found on PATH: %s", name)
	}
	return nil
}
