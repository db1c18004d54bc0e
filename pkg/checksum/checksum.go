// Package checksum verifies downloaded asset files against operator-pinned
// digests. Only font assets are ever pinned; the browser/Conda installers
// publish rolling "latest" artifacts with no stable digest to pin.
package checksum

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Algorithm names a supported digest algorithm.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	SHA1   Algorithm = "sha1"
)

// Compute returns the hex digest of the file at path.
func Compute(path string, algorithm Algorithm) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	var h hash.Hash
	switch algorithm {
	case SHA256:
		h = sha256.New()
	case SHA512:
		h = sha512.New()
	case SHA1:
		h = sha1.New()
	default:
		return "", fmt.Errorf("unsupported algorithm: %s", algorithm)
	}

	if _, err := io.Copy(h, file); err != nil {
		return "", errors.Wrap(err, "failed to compute checksum")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify checks the file at path against expected, given either as a bare
// hex digest (sha256 assumed) or prefixed with the algorithm, e.g.
// "sha512:ab12…". Comparison is case-insensitive.
func Verify(path, expected string) error {
	algorithm := SHA256
	digest := expected
	if algo, rest, ok := strings.Cut(expected, ":"); ok {
		algorithm = Algorithm(strings.ToLower(algo))
		digest = rest
	}

	computed, err := Compute(path, algorithm)
	if err != nil {
		return err
	}
	if !strings.EqualFold(computed, digest) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", path, digest, computed)
	}
	return nil
}
