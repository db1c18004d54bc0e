// Package archive extracts downloaded font release archives. Nerd Font
// releases ship as zip or tar.gz; anything else is treated as a raw file
// needing no extraction.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format represents the archive format.
type Format string

const (
	FormatTarGz Format = "tar.gz"
	FormatTar   Format = "tar"
	FormatZip   Format = "zip"
	FormatRaw   Format = "raw"
)

// DetectFormat decides the archive format from the filename.
func DetectFormat(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	default:
		return FormatRaw
	}
}

// Extract unpacks archivePath into destDir, optionally stripping leading
// path components. Raw files need no extraction and are a no-op. Entries
// escaping destDir are rejected.
func Extract(archivePath, destDir string, stripCount int) error {
	switch format := DetectFormat(archivePath); format {
	case FormatTarGz:
		return extractTarGz(archivePath, destDir, stripCount)
	case FormatTar:
		return extractTar(archivePath, destDir, stripCount)
	case FormatZip:
		return extractZip(archivePath, destDir, stripCount)
	case FormatRaw:
		return nil
	default:
		return fmt.Errorf("unsupported archive format: %s", format)
	}
}

func extractTarGz(archivePath, destDir string, stripCount int) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open archive")
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return errors.Wrap(err, "failed to create gzip reader")
	}
	defer gzReader.Close()

	return extractTarReader(gzReader, destDir, stripCount)
}

func extractTar(archivePath, destDir string, stripCount int) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open archive")
	}
	defer file.Close()

	return extractTarReader(file, destDir, stripCount)
}

func extractTarReader(r io.Reader, destDir string, stripCount int) error {
	tarReader := tar.NewReader(r)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read tar header")
		}

		target, ok, err := entryTarget(destDir, header.Name, stripCount)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return errors.Wrap(err, "failed to create directory")
			}
		case tar.TypeReg:
			if err := writeEntry(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}
		}
	}
}

func extractZip(archivePath, destDir string, stripCount int) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open zip archive")
	}
	defer reader.Close()

	for _, file := range reader.File {
		target, ok, err := entryTarget(destDir, file.Name, stripCount)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, file.Mode()); err != nil {
				return errors.Wrap(err, "failed to create directory")
			}
			continue
		}

		src, err := file.Open()
		if err != nil {
			return errors.Wrap(err, "failed to open file in archive")
		}
		if err := writeEntry(target, src, file.Mode()); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return nil
}

// entryTarget resolves one archive entry to a destination path, applying
// strip components and the path-traversal guard.
func entryTarget(destDir, name string, stripCount int) (string, bool, error) {
	path, skip := stripComponents(name, stripCount)
	if skip {
		return "", false, nil
	}
	target := filepath.Join(destDir, path)
	if target != destDir && !strings.HasPrefix(target, destDir+string(os.PathSeparator)) {
		return "", false, fmt.Errorf("invalid path in archive: %s", name)
	}
	return target, true, nil
}

func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrap(err, "failed to create parent directory")
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrap(err, "failed to extract file")
	}
	return dst.Close()
}

// stripComponents removes count leading path components; entries with fewer
// components are skipped entirely.
func stripComponents(path string, count int) (string, bool) {
	if count == 0 {
		return path, false
	}
	parts := strings.Split(path, "/")
	if len(parts) <= count {
		return "", true
	}
	return strings.Join(parts[count:], "/"), false
}
