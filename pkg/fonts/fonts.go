// Package fonts installs terminal fonts into the per-user font directory:
// the MesloLGS NF files recommended for powerlevel10k, plus optional Nerd
// Font archives from the ryanoasis/nerd-fonts releases. Individual fetch
// failures are warnings; the font cache is refreshed best-effort afterwards.
package fonts

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/workbench-install/workbench/internal/run"
	"github.com/workbench-install/workbench/pkg/archive"
	"github.com/workbench-install/workbench/pkg/checksum"
	"github.com/workbench-install/workbench/pkg/fetch"
)

// Overridable in tests.
var (
	mesloBaseURL         = "https://github.com/romkatv/powerlevel10k-media/raw/master"
	nerdFontsDownloadURL = "https://github.com/ryanoasis/nerd-fonts/releases/download"
)

const nerdFontsRepo = "ryanoasis/nerd-fonts"

// Installer places font files under FontDir.
type Installer struct {
	FontDir string
	Runner  run.Runner

	// Archives are Nerd Font archive names (e.g. "JetBrainsMono") fetched
	// from the latest nerd-fonts release in addition to the asset files.
	Archives []string

	// Checksums holds operator-pinned digests per decoded asset file name.
	// Assets without an entry are accepted unverified.
	Checksums map[string]string
}

// New returns an Installer backed by the live system.
func New(fontDir string, archives []string, checksums map[string]string) *Installer {
	return &Installer{FontDir: fontDir, Runner: run.Exec{}, Archives: archives, Checksums: checksums}
}

// Install fetches every asset and archive that is not already present.
// Returns the number of files newly installed and the number of files that
// failed; per-file failures are logged as warnings and do not abort the
// remaining files.
func (i *Installer) Install(ctx context.Context, assets []string) (installed, failed int, err error) {
	if err := os.MkdirAll(i.FontDir, 0755); err != nil {
		return 0, 0, errors.Wrapf(err, "failed to create font directory %s", i.FontDir)
	}

	for _, asset := range assets {
		name, decodeErr := url.PathUnescape(asset)
		if decodeErr != nil {
			name = asset
		}
		dest := filepath.Join(i.FontDir, name)
		downloaded, err := fetch.DownloadIfMissing(ctx, mesloBaseURL+"/"+asset, dest)
		if err != nil {
			log.WithError(err).Warnf("failed to download font %s", name)
			failed++
			continue
		}
		if downloaded {
			if pinned, ok := i.Checksums[name]; ok {
				if err := checksum.Verify(dest, pinned); err != nil {
					log.WithError(err).Warnf("checksum mismatch for font %s", name)
					os.Remove(dest)
					failed++
					continue
				}
			}
			log.Infof("installed font %s", name)
			installed++
		}
	}

	for _, name := range i.Archives {
		n, err := i.installArchive(ctx, name)
		if err != nil {
			log.WithError(err).Warnf("failed to install font archive %s", name)
			failed++
			continue
		}
		installed += n
	}

	if installed > 0 {
		i.refreshCache(ctx)
	}
	return installed, failed, nil
}

// installArchive fetches a Nerd Font release archive and extracts it into a
// per-family subdirectory. An existing subdirectory means the family is
// already installed.
func (i *Installer) installArchive(ctx context.Context, name string) (int, error) {
	familyDir := filepath.Join(i.FontDir, name)
	if info, err := os.Stat(familyDir); err == nil && info.IsDir() {
		log.Debugf("font family already present, skipping: %s", name)
		return 0, nil
	}

	tag, err := latestReleaseTag(ctx, nerdFontsRepo)
	if err != nil {
		return 0, err
	}

	tmpDir, err := os.MkdirTemp("", "workbench-fonts-*")
	if err != nil {
		return 0, errors.Wrap(err, "failed to create temporary directory")
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, name+".zip")
	archiveURL := nerdFontsDownloadURL + "/" + tag + "/" + name + ".zip"
	if err := fetch.Download(ctx, archiveURL, archivePath); err != nil {
		return 0, err
	}

	if err := archive.Extract(archivePath, familyDir, 0); err != nil {
		// Half-extracted families would shadow the skip check next run.
		os.RemoveAll(familyDir)
		return 0, errors.Wrapf(err, "failed to extract %s", name)
	}

	count, err := countFontFiles(familyDir)
	if err != nil {
		return 0, err
	}
	log.Infof("installed font family %s (%s, %d fonts)", name, tag, count)
	return count, nil
}

// countFontFiles counts the font files under dir, ignoring the LICENSE and
// README files Nerd Font archives ship alongside them.
func countFontFiles(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
			count++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read %s", dir)
	}
	return count, nil
}

// refreshCache rebuilds the fontconfig cache. Failure only means newly
// installed fonts show up after the next login, so it is a warning.
func (i *Installer) refreshCache(ctx context.Context) {
	if err := i.Runner.Run(ctx, "fc-cache", "-f", i.FontDir); err != nil {
		log.WithError(err).Warn("failed to refresh font cache")
	}
}
