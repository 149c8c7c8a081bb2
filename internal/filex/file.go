// Package filex contains small filesystem helpers used by the export flow.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnsureDir creates dir (and parents) when missing and returns its absolute
// path. A relative dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// DatedName returns "<prefix>_<YYYY-MM-DD><ext>" using the UTC date of t.
func DatedName(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s%s", prefix, t.UTC().Format(time.DateOnly), ext)
}

// WriteFile writes data to name inside dir, creating dir first.
func WriteFile(dir, name string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(abs, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
