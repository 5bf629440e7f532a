// Package storage abstracts where uploaded catalog images are kept. The API
// layer only sees the Store interface; the backend is selected at startup.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store persists an uploaded file and returns the public location the client
// should save on the product record. Remove undoes a Save, given the location
// Save returned.
type Store interface {
	Save(ctx context.Context, filename string, src io.Reader) (string, error)
	Remove(ctx context.Context, location string) error
}

// DiskStore writes uploads to a local directory served under PublicPrefix.
type DiskStore struct {
	Dir          string
	PublicPrefix string
}

func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &DiskStore{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename string, src io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write upload file")
	}
	return path.Join(s.PublicPrefix, name), nil
}

func (s *DiskStore) Remove(ctx context.Context, location string) error {
	name := path.Base(location)
	if name == "." || name == "/" {
		return errors.Errorf("invalid upload location %q", location)
	}
	return errors.Wrap(os.Remove(filepath.Join(s.Dir, name)), "remove upload file")
}
