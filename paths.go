package mimewrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Default file extensions.
const (
	DefaultSidecarExtension = ".headers"
	DefaultOutputExtension  = ".eml"
)

// trimExt removes the extension, if any, from the final element of path.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// FindSidecar looks for the sidecar of input. The extension of input is
// replaced with ext first, so report.pdf looks for report.headers, and then
// ext is appended, so report.pdf looks for report.pdf.headers. It returns the
// first path that names a regular file or fails with ErrNoSidecar.
func FindSidecar(input, ext string) (string, error) {
	if ext == "" {
		ext = DefaultSidecarExtension
	}

	candidates := []string{trimExt(input) + ext}
	if alt := input + ext; alt != candidates[0] {
		candidates = append(candidates, alt)
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && fi.Mode().IsRegular() {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w for %q, tried %s", ErrNoSidecar, input, strings.Join(candidates, " and "))
}

// DefaultOutput returns the output path for input: the extension of input is
// replaced with ext. If that would name the input itself, ext is appended
// instead.
func DefaultOutput(input, ext string) string {
	if ext == "" {
		ext = DefaultOutputExtension
	}

	out := trimExt(input) + ext
	if out == input {
		out = input + ext
	}
	return out
}

// sameFile returns true if a and b name the same file.
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}

	fa, err := os.Stat(a)
	if err != nil {
		return false
	}

	fb, err := os.Stat(b)
	if err != nil {
		return false
	}

	return os.SameFile(fa, fb)
}

// writeFile writes data to a temporary file in the directory of path and
// renames it into place, so path is either left as it was or holds all of
// data. The temporary file is removed on failure.
func writeFile(path string, data []byte) error {
	f, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(0o644),
	)
	if err != nil {
		return err
	}
	defer func() { _ = f.Cleanup() }()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return f.CloseAtomicallyReplace()
}
