// Package blob stores uploaded media as opaque bytes and hands out stable
// references. Content is addressed by reference only; nothing inspects or
// transcodes the bytes.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists media blobs and resolves references to serving URLs.
type Store interface {
	// Save writes the blob and returns its reference. ext is the file
	// extension including the dot, or empty.
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
	// URL resolves a stored reference to a client-facing URL. Empty refs
	// resolve to the empty string.
	URL(ref string) string
}

// DiskStore keeps blobs as flat files under a base directory.
type DiskStore struct {
	baseDir string
	baseURL string
}

// NewDiskStore creates the base directory if needed and returns a store
// serving references under baseURL.
func NewDiskStore(baseDir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStore) Save(_ context.Context, ext string, r io.Reader) (string, error) {
	ext = sanitizeExt(ext)
	ref := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.baseDir, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return ref, nil
}

func (s *DiskStore) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return s.baseURL + "/" + ref
}

// Dir returns the backing directory, for mounting a static file route.
func (s *DiskStore) Dir() string {
	return s.baseDir
}

// sanitizeExt keeps only a plain ".xyz" suffix; anything else is dropped so
// a reference can never escape the base directory.
func sanitizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	if len(ext) > 8 {
		return ""
	}
	return ext
}
