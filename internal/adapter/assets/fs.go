package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// ErrInvalidKey is returned for keys that would escape the store root.
var ErrInvalidKey = errors.New("invalid asset key")

// FSStore keeps assets as files under a root directory. The HTTP server
// exposes the same directory at baseURL.
type FSStore struct {
	root    string
	baseURL string
}

// NewFSStore creates the root directory if needed and returns a store serving from baseURL.
func NewFSStore(root, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating asset dir: %w", err)
	}
	return &FSStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory assets are written to.
func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) Put(_ context.Context, name, _ string, data []byte) (domain.Asset, error) {
	file, err := s.resolve(name)
	if err != nil {
		return domain.Asset{}, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return domain.Asset{}, fmt.Errorf("creating asset dir: %w", err)
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(file), ".upload-*")
	if err != nil {
		return domain.Asset{}, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.Asset{}, fmt.Errorf("writing asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.Asset{}, fmt.Errorf("closing asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return domain.Asset{}, fmt.Errorf("moving asset into place: %w", err)
	}

	return domain.Asset{Key: name, URL: s.baseURL + "/" + name}, nil
}

// Delete removes an asset. Deleting a missing asset is not an error.
func (s *FSStore) Delete(_ context.Context, key string) error {
	file, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing asset: %w", err)
	}
	return nil
}

func (s *FSStore) resolve(key string) (string, error) {
	clean := path.Clean(key)
	if key == "" || clean != key || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
