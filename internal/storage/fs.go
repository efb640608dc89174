package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS implements Provider backed by a local data directory.
type FS struct {
	root string // absolute path to the data directory
}

// NewFS creates an FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute path of the data directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a file name against the data directory and rejects
// anything that is not a plain name inside it (directory traversal).
func (f *FS) safePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: file name is required")
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || strings.ContainsRune(cleaned, os.PathSeparator) || cleaned == ".." {
		return "", fmt.Errorf("storage: invalid file name: %s", name)
	}
	return filepath.Join(f.root, cleaned), nil
}

// Read returns the raw bytes of a data file.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename. Readers never
// observe a partially written store.
func (f *FS) Write(name string, content []byte) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.root, ".macrolog-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Exists reports whether the named file is present in the data directory.
func (f *FS) Exists(name string) bool {
	abs, err := f.safePath(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// Checksum returns the hex SHA-256 of the named file, or "" when unreadable.
func (f *FS) Checksum(name string) string {
	data, err := f.Read(name)
	if err != nil {
		return ""
	}
	return Sum(data)
}

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
