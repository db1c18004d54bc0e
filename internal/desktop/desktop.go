// Package desktop writes per-user desktop-integration descriptor files for
// the two file-manager integrations: a Nautilus script and a Nemo action.
// Generation is a pure template render; installation skips files whose
// content is already up to date.
package desktop

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/adrg/xdg"
	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Entry describes the tool being integrated.
type Entry struct {
	// Command is the executable invoked by the integration.
	Command string
	// Label is the human-readable name shown in menus.
	Label string
}

// Installer writes integration files under an XDG data home.
type Installer struct {
	DataHome string
}

// New returns an Installer rooted at the user's XDG data directory.
func New() *Installer {
	return &Installer{DataHome: xdg.DataHome}
}

// GenerateNautilusScript renders the Nautilus script for the entry.
func GenerateNautilusScript(e Entry) ([]byte, error) {
	return render("nautilus-script", nautilusScriptTemplate, e)
}

// GenerateNemoAction renders the Nemo action descriptor for the entry.
func GenerateNemoAction(e Entry) ([]byte, error) {
	return render("nemo-action", nemoActionTemplate, e)
}

// GenerateDesktopEntry renders the application launcher for the entry.
func GenerateDesktopEntry(e Entry) ([]byte, error) {
	return render("desktop-entry", desktopEntryTemplate, e)
}

func render(name, tmpl string, e Entry) ([]byte, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s template", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, e); err != nil {
		return nil, errors.Wrapf(err, "failed to execute %s template", name)
	}
	return buf.Bytes(), nil
}

// Ensure writes the launcher and both file-manager integration files for the
// entry, creating directories as needed. Files already holding the rendered
// content are left untouched. Returns the number of files written.
func (i *Installer) Ensure(e Entry) (int, error) {
	written := 0

	script, err := GenerateNautilusScript(e)
	if err != nil {
		return written, err
	}
	scriptPath := filepath.Join(i.DataHome, "nautilus", "scripts", "Open in "+e.Label)
	n, err := writeIfChanged(scriptPath, script, 0755)
	if err != nil {
		return written, err
	}
	written += n

	action, err := GenerateNemoAction(e)
	if err != nil {
		return written, err
	}
	actionPath := filepath.Join(i.DataHome, "nemo", "actions", e.Command+".nemo_action")
	n, err = writeIfChanged(actionPath, action, 0644)
	if err != nil {
		return written, err
	}
	written += n

	launcher, err := GenerateDesktopEntry(e)
	if err != nil {
		return written, err
	}
	launcherPath := filepath.Join(i.DataHome, "applications", e.Command+".desktop")
	n, err = writeIfChanged(launcherPath, launcher, 0644)
	if err != nil {
		return written, err
	}
	written += n

	return written, nil
}

// writeIfChanged writes content to path unless the file already matches.
func writeIfChanged(path string, content []byte, mode os.FileMode) (int, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		log.Debugf("up to date: %s", path)
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return 0, errors.Wrapf(err, "failed to write %s", path)
	}
	log.Infof("wrote %s", path)
	return 1, nil
}
