// Package proofstore keeps proof-of-delivery images on local disk or in S3.
package proofstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// LocalStorage writes images below a root directory and returns a URL under
// publicBase.
type LocalStorage struct {
	root       string
	publicBase string
}

func NewLocalStorage(root, publicBase string) (*LocalStorage, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create proof directory: %w", err)
	}
	return &LocalStorage{root: root, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}

	return s.publicBase + "/" + strings.TrimLeft(filepath.ToSlash(key), "/"), nil
}

func (s *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimLeft(key, "/")))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", errs.NewValueIsInvalidErrorWithCause("key", fmt.Errorf("%q escapes the storage root", key))
	}
	return filepath.Join(s.root, clean), nil
}
