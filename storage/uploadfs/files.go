// Package uploadfs is the writable directory collaborator holding uploaded
// identity images. The record store only keeps the path strings; the bytes
// live here.
package uploadfs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type Store struct {
	root string
}

// New ensures the upload root exists and returns a store rooted there.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload root")
	}
	return &Store{root: root}, nil
}

// SavePhoto stores a registrant's photo as "<username>_photo<ext>" and
// returns the stored path.
func (s *Store) SavePhoto(username string, data []byte, filename string) (string, error) {
	return s.save(username+"_photo"+ext(filename), data)
}

// SaveSignature stores a registrant's signature as "<username>_sign<ext>"
// and returns the stored path.
func (s *Store) SaveSignature(username string, data []byte, filename string) (string, error) {
	return s.save(username+"_sign"+ext(filename), data)
}

func (s *Store) save(name string, data []byte) (string, error) {
	path := filepath.Join(s.root, name)
	if err := ioutil.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// Load reads a stored image back. Callers treat a failure as a missing
// resource, not a fatal error.
func (s *Store) Load(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

func ext(filename string) string {
	e := strings.ToLower(filepath.Ext(filename))
	switch e {
	case ".jpg", ".jpeg", ".png":
		return e
	default:
		return ".png"
	}
}
