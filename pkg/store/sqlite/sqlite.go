// Package sqlite reads Kripke structures persisted in SQLite databases.
//
// The database holds one structure spread over six tables:
//
//	structure(identifier)
//	states(id, initial)
//	propositions(state_id, name)
//	clocks(name)
//	edges(id, source, target, guard)
//	edge_resets(edge_id, clock)
//
// Rows are read in insertion order, which is the declaration order of the
// structure. Databases are opened read-only.
package sqlite

import (
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/logging"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Schema creates the tables of a structure database
const Schema = `
CREATE TABLE IF NOT EXISTS structure (identifier TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS states (id TEXT PRIMARY KEY, initial INTEGER NOT NULL DEFAULT 0);
CREATE TABLE IF NOT EXISTS propositions (state_id TEXT NOT NULL REFERENCES states(id), name TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS clocks (name TEXT PRIMARY KEY);
CREATE TABLE IF NOT EXISTS edges (id INTEGER PRIMARY KEY, source TEXT NOT NULL, target TEXT NOT NULL, guard TEXT NOT NULL DEFAULT '');
CREATE TABLE IF NOT EXISTS edge_resets (edge_id INTEGER NOT NULL REFERENCES edges(id), clock TEXT NOT NULL);
`

// Extensions lists the file extensions served by this store
var Extensions = []string{".db", ".sqlite", ".sqlite3"}

func dsn(path string, readOnly bool) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(filepath.ToSlash(path))
	if readOnly {
		return "file:" + escaped + "?mode=ro"
	}
	return "file:" + escaped + "?mode=rwc"
}

// Load reads the structure stored in the database at path
func Load(path string) (*kripke.Structure, error) {
	logger := logging.GetLogger("store.sqlite").With().Str("path", path).Logger()
	done := logging.LogOperationStart(logger, "load sqlite structure")
	defer done()

	db, err := sql.Open(driverName, dsn(path, true))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreInvalid, "cannot open sqlite database")
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close database")
		}
	}()

	s := kripke.New("")
	steps := []struct {
		what string
		load func(*sql.DB, *kripke.Structure) error
	}{
		{"identifier", loadIdentifier},
		{"clocks", loadClocks},
		{"states", loadStates},
		{"propositions", loadPropositions},
		{"edges", loadEdges},
	}
	for _, step := range steps {
		if err := step.load(db, s); err != nil {
			return nil, errors.Wrapf(err, errors.ErrStoreInvalid, "cannot read %s", step.what)
		}
	}

	logger.Debug().Str("structure", s.String()).Msg("Structure loaded")
	return s, nil
}

func loadIdentifier(db *sql.DB, s *kripke.Structure) error {
	var identifier sql.NullString
	err := db.QueryRow(`SELECT identifier FROM structure LIMIT 1`).Scan(&identifier)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	s.Identifier = identifier.String
	return nil
}

func loadClocks(db *sql.DB, s *kripke.Structure) error {
	rows, err := db.Query(`SELECT name FROM clocks ORDER BY rowid`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		s.AddClock(name)
	}
	return rows.Err()
}

func loadStates(db *sql.DB, s *kripke.Structure) error {
	rows, err := db.Query(`SELECT id, initial FROM states ORDER BY rowid`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var st kripke.State
		if err := rows.Scan(&st.ID, &st.Initial); err != nil {
			return err
		}
		s.States = append(s.States, st)
	}
	return rows.Err()
}

func loadPropositions(db *sql.DB, s *kripke.Structure) error {
	rows, err := db.Query(`SELECT state_id, name FROM propositions ORDER BY rowid`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var stateID, name string
		if err := rows.Scan(&stateID, &name); err != nil {
			return err
		}
		if _, ok := s.State(stateID); !ok {
			return errors.Newf(errors.ErrStoreInvalid, "proposition %q labels unknown state %q", name, stateID)
		}
		s.AddState(stateID, false, name)
	}
	return rows.Err()
}

func loadEdges(db *sql.DB, s *kripke.Structure) error {
	resets, err := loadResets(db)
	if err != nil {
		return err
	}

	rows, err := db.Query(`SELECT id, source, target, guard FROM edges ORDER BY id`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id     int64
			source string
			target string
			guard  sql.NullString
		)
		if err := rows.Scan(&id, &source, &target, &guard); err != nil {
			return err
		}
		s.AddEdge(source, target, guard.String, resets[id]...)
	}
	return rows.Err()
}

func loadResets(db *sql.DB) (map[int64][]string, error) {
	rows, err := db.Query(`SELECT edge_id, clock FROM edge_resets ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	resets := make(map[int64][]string)
	for rows.Next() {
		var (
			edgeID int64
			clock  string
		)
		if err := rows.Scan(&edgeID, &clock); err != nil {
			return nil, err
		}
		resets[edgeID] = append(resets[edgeID], clock)
	}
	return resets, rows.Err()
}

// Save writes s into a new or existing database at path, replacing any
// structure stored there
func Save(path string, s *kripke.Structure) (err error) {
	db, err := sql.Open(driverName, dsn(path, false))
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot open sqlite database")
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrFileWrite, "cannot close sqlite database")
		}
	}()

	if _, err := db.Exec(Schema); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot start transaction")
	}
	if err := insert(tx, s); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, errors.ErrFileWrite, "cannot store structure")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot commit structure")
	}
	return nil
}

func insert(tx *sql.Tx, s *kripke.Structure) error {
	for _, table := range []string{"edge_resets", "edges", "propositions", "states", "clocks", "structure"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`INSERT INTO structure (identifier) VALUES (?)`, s.Identifier); err != nil {
		return err
	}
	for _, c := range s.Clocks {
		if _, err := tx.Exec(`INSERT INTO clocks (name) VALUES (?)`, c); err != nil {
			return err
		}
	}
	for _, st := range s.States {
		if _, err := tx.Exec(`INSERT INTO states (id, initial) VALUES (?, ?)`, st.ID, st.Initial); err != nil {
			return err
		}
		for _, p := range st.Propositions {
			if _, err := tx.Exec(`INSERT INTO propositions (state_id, name) VALUES (?, ?)`, st.ID, p); err != nil {
				return err
			}
		}
	}
	for i, e := range s.Edges {
		id := int64(i + 1)
		if _, err := tx.Exec(`INSERT INTO edges (id, source, target, guard) VALUES (?, ?, ?, ?)`,
			id, e.Source, e.Target, e.Guard); err != nil {
			return err
		}
		for _, c := range e.Resets {
			if _, err := tx.Exec(`INSERT INTO edge_resets (edge_id, clock) VALUES (?, ?)`, id, c); err != nil {
				return err
			}
		}
	}
	return nil
}
