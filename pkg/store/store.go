// Package store opens persisted Kripke structures.
//
// Open picks a backend from the location: BadgerDB directories, SQLite
// databases or structure documents (YAML, JSON, TOML). Every failure is
// reported as an ErrStoreOpen error carrying the location, wrapping the
// backend specific cause.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/arthur-debert/model-extract/pkg/store/badger"
	"github.com/arthur-debert/model-extract/pkg/store/document"
	"github.com/arthur-debert/model-extract/pkg/store/sqlite"
)

// Backend identifies a storage backend
type Backend string

const (
	BackendBadger   Backend = "badger"
	BackendSQLite   Backend = "sqlite"
	BackendDocument Backend = "document"
)

type loader func(path string) (*kripke.Structure, error)

var loaders = map[Backend]loader{
	BackendBadger:   badger.Load,
	BackendSQLite:   sqlite.Load,
	BackendDocument: document.Load,
}

// Store opens structures from the local filesystem
type Store struct{}

// New returns a filesystem store
func New() *Store {
	return &Store{}
}

// Open implements the pipeline's structure opener
func (s *Store) Open(location string) (*kripke.Structure, error) {
	return Open(location)
}

// Detect returns the backend serving location
func Detect(location string) (Backend, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrStoreNotFound, "%s does not exist", location)
		}
		return "", errors.Wrapf(err, errors.ErrStoreOpen, "cannot access %s", location)
	}

	if info.IsDir() {
		if badger.IsDatabase(location) {
			return BackendBadger, nil
		}
		return "", errors.Newf(errors.ErrStoreUnsupported, "%s is a directory but not a badger database", location)
	}

	ext := strings.ToLower(filepath.Ext(location))
	switch {
	case contains(sqlite.Extensions, ext):
		return BackendSQLite, nil
	case contains(document.Extensions, ext):
		return BackendDocument, nil
	default:
		return "", errors.Newf(errors.ErrStoreUnsupported, "unsupported structure file %s", location).
			WithDetail("extension", ext)
	}
}

// Open loads and validates the structure persisted at location. Structures
// without an identifier are named after the file, without extension.
func Open(location string) (*kripke.Structure, error) {
	logger := logging.GetLogger("store").With().Str("location", location).Logger()

	backend, err := Detect(location)
	if err != nil {
		return nil, wrapOpen(err, location)
	}
	logger.Debug().Str("backend", string(backend)).Msg("Opening structure")

	s, err := loaders[backend](location)
	if err != nil {
		return nil, wrapOpen(err, location).WithDetail("backend", string(backend))
	}

	if s.Identifier == "" {
		s.Identifier = Stem(location)
		logger.Debug().Str("identifier", s.Identifier).Msg("Identifier derived from file name")
	}

	if err := s.Validate(); err != nil {
		return nil, wrapOpen(err, location).WithDetail("backend", string(backend))
	}

	logger.Info().Str("structure", s.String()).Msg("Structure opened")
	return s, nil
}

// Stem returns the file name of location without its extension
func Stem(location string) string {
	base := filepath.Base(filepath.Clean(location))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func wrapOpen(err error, location string) *errors.ExtractError {
	return errors.Wrapf(err, errors.ErrStoreOpen, "cannot open structure %s", location).
		WithDetail("location", location)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
