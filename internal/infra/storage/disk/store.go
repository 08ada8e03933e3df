// Package disk implements the document store and the entity repositories on
// top of a plain directory tree: one collection per directory, one JSON file
// per document, keyed by the document's primary id.
package disk

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"sliceco/config"
	"sliceco/internal/domain/repository"

	"github.com/pkg/errors"
)

const fileExtension = ".json"

// Store persists documents as <baseDir>/<collection>/<key>.json. It performs
// no cross-operation locking: concurrent read-modify-write sequences on the
// same key can lose updates, exactly as callers of the contract must expect.
// Create is the one exclusive operation and backstops random-id uniqueness.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir, creating the directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}

	return &Store{baseDir: baseDir}, nil
}

// New builds the document store from config for injection.
func New(cfg *config.Config) (repository.DocumentStore, error) {
	return NewStore(cfg.Storage.DataDir)
}

// Create persists a new document under key. The payload is written to a
// temporary file first and then hard-linked into place: the link fails if the
// key is taken, and a crash before the link leaves no document behind.
func (s *Store) Create(ctx context.Context, collection, key string, doc any) error {
	dir := filepath.Join(s.baseDir, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create collection directory")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode document")
	}

	tmp, err := os.CreateTemp(dir, ".create-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to write document")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close document file")
	}

	if err := os.Link(tmpName, s.path(collection, key)); err != nil {
		if os.IsExist(err) {
			return repository.ErrAlreadyExists
		}

		return errors.Wrap(err, "failed to commit document")
	}

	return nil
}

// Read unmarshals the document at key into doc. Content that fails to parse
// is treated as an empty document, not an error.
func (s *Store) Read(ctx context.Context, collection, key string, doc any) error {
	data, err := os.ReadFile(s.path(collection, key))
	if err != nil {
		if os.IsNotExist(err) {
			return repository.ErrNotFound
		}

		return errors.Wrap(err, "failed to read document")
	}

	// Malformed content means the document was never fully written; hand the
	// caller an empty document instead of a parse failure. Unmarshal may have
	// populated some fields before giving up, so the destination is zeroed.
	if err := json.Unmarshal(data, doc); err != nil {
		zeroDoc(doc)

		return nil
	}

	return nil
}

func zeroDoc(doc any) {
	v := reflect.ValueOf(doc)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()
	if elem.CanSet() {
		elem.Set(reflect.Zero(elem.Type()))
	}
}

// Update fully replaces the document at key via a temp-file rename.
func (s *Store) Update(ctx context.Context, collection, key string, doc any) error {
	path := s.path(collection, key)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return repository.ErrNotFound
		}

		return errors.Wrap(err, "failed to stat document")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode document")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".update-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to write document")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close document file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "failed to replace document")
	}

	return nil
}

// Delete removes the document at key.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if err := os.Remove(s.path(collection, key)); err != nil {
		if os.IsNotExist(err) {
			return repository.ErrNotFound
		}

		return errors.Wrap(err, "failed to delete document")
	}

	return nil
}

// List returns the keys present in the collection. A collection that was
// never written to is simply empty.
func (s *Store) List(ctx context.Context, collection string) ([]string, error) {
	dirEntries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to list collection")
	}

	keys := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExtension))
	}

	return keys, nil
}

func (s *Store) path(collection, key string) string {
	return filepath.Join(s.baseDir, collection, key+fileExtension)
}
