// Package badger reads Kripke structures persisted in BadgerDB directories.
//
// Key layout, values are JSON unless noted:
//
//	meta/identifier   identifier (raw string)
//	clock/%08d        clock name (raw string)
//	state/%08d        kripke.State
//	edge/%08d         kripke.Edge
//
// Zero padded sequence numbers keep the declaration order of the structure
// in key order.
package badger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const (
	keyIdentifier = "meta/identifier"
	prefixClock   = "clock/"
	prefixState   = "state/"
	prefixEdge    = "edge/"
)

// IsDatabase reports whether dir looks like a BadgerDB directory
func IsDatabase(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, badger.ManifestFilename))
	return err == nil && info.Mode().IsRegular()
}

// badgerLogger adapts zerolog to BadgerDB's Logger interface
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}

func open(dir string, readOnly bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).
		WithReadOnly(readOnly).
		WithLogger(&badgerLogger{logger: logging.GetLogger("store.badger")})
	return badger.Open(opts)
}

// Load reads the structure stored in the database directory dir
func Load(dir string) (*kripke.Structure, error) {
	logger := logging.GetLogger("store.badger").With().Str("path", dir).Logger()
	done := logging.LogOperationStart(logger, "load badger structure")
	defer done()

	db, err := open(dir, true)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot open badger database")
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close database")
		}
	}()

	s := kripke.New("")
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyIdentifier))
		switch {
		case err == badger.ErrKeyNotFound:
		case err != nil:
			return err
		default:
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			s.Identifier = string(value)
		}

		if err := scan(txn, prefixClock, func(value []byte) error {
			s.AddClock(string(value))
			return nil
		}); err != nil {
			return err
		}

		if err := scan(txn, prefixState, func(value []byte) error {
			var st kripke.State
			if err := json.Unmarshal(value, &st); err != nil {
				return err
			}
			s.States = append(s.States, st)
			return nil
		}); err != nil {
			return err
		}

		return scan(txn, prefixEdge, func(value []byte) error {
			var e kripke.Edge
			if err := json.Unmarshal(value, &e); err != nil {
				return err
			}
			s.Edges = append(s.Edges, e)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot read badger structure")
	}

	logger.Debug().Str("structure", s.String()).Msg("Structure loaded")
	return s, nil
}

func scan(txn *badger.Txn, prefix string, fn func(value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if err := item.Value(fn); err != nil {
			return fmt.Errorf("key %s: %w", item.Key(), err)
		}
	}
	return nil
}

// Save writes s into the database directory dir, replacing any structure
// stored there
func Save(dir string, s *kripke.Structure) (err error) {
	db, err := open(dir, false)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot open badger database")
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrFileWrite, "cannot close badger database")
		}
	}()

	for _, prefix := range []string{prefixClock, prefixState, prefixEdge} {
		if err := db.DropPrefix([]byte(prefix)); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "cannot clear previous structure")
		}
	}

	err = db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyIdentifier), []byte(s.Identifier)); err != nil {
			return err
		}
		for i, c := range s.Clocks {
			if err := txn.Set(sequenceKey(prefixClock, i), []byte(c)); err != nil {
				return err
			}
		}
		for i, st := range s.States {
			if err := setJSON(txn, sequenceKey(prefixState, i), st); err != nil {
				return err
			}
		}
		for i, e := range s.Edges {
			if err := setJSON(txn, sequenceKey(prefixEdge, i), e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot store structure")
	}
	return nil
}

func sequenceKey(prefix string, i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", prefix, i))
}

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}
