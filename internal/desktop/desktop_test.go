package desktop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEntry = Entry{Command: "doublecmd", Label: "Double Commander"}

func TestGenerateNautilusScript(t *testing.T) {
	script, err := GenerateNautilusScript(testEntry)
	require.NoError(t, err)

	s := string(script)
	assert.True(t, len(s) > 0)
	assert.Contains(t, s, "#!/bin/sh")
	assert.Contains(t, s, `exec doublecmd "$dir"`)
	assert.Contains(t, s, "Double Commander")
}

func TestGenerateNemoAction(t *testing.T) {
	action, err := GenerateNemoAction(testEntry)
	require.NoError(t, err)

	s := string(action)
	assert.Contains(t, s, "[Nemo Action]")
	assert.Contains(t, s, "Name=Open in Double Commander")
	assert.Contains(t, s, "Exec=doublecmd %F")
}

func TestGenerateDesktopEntry(t *testing.T) {
	launcher, err := GenerateDesktopEntry(testEntry)
	require.NoError(t, err)

	s := string(launcher)
	assert.Contains(t, s, "[Desktop Entry]")
	assert.Contains(t, s, "Name=Double Commander")
	assert.Contains(t, s, "Exec=doublecmd %U")
}

func TestEnsureWritesAllIntegrations(t *testing.T) {
	inst := &Installer{DataHome: t.TempDir()}

	written, err := inst.Ensure(testEntry)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	scriptPath := filepath.Join(inst.DataHome, "nautilus", "scripts", "Open in Double Commander")
	info, err := os.Stat(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "nautilus script must be executable")

	assert.FileExists(t, filepath.Join(inst.DataHome, "nemo", "actions", "doublecmd.nemo_action"))
	assert.FileExists(t, filepath.Join(inst.DataHome, "applications", "doublecmd.desktop"))
}

func TestEnsureIsConvergent(t *testing.T) {
	inst := &Installer{DataHome: t.TempDir()}

	written, err := inst.Ensure(testEntry)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	written, err = inst.Ensure(testEntry)
	require.NoError(t, err)
	assert.Equal(t, 0, written, "unchanged files must not be rewritten")
}

func TestEnsureRewritesStaleContent(t *testing.T) {
	inst := &Installer{DataHome: t.TempDir()}

	_, err := inst.Ensure(testEntry)
	require.NoError(t, err)

	actionPath := filepath.Join(inst.DataHome, "nemo", "actions", "doublecmd.nemo_action")
	require.NoError(t, os.WriteFile(actionPath, []byte("stale"), 0644))

	written, err := inst.Ensure(testEntry)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	data, err := os.ReadFile(actionPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Nemo Action]")
}
