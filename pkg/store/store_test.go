// pkg/store/store_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: all backends, temp directory
// PURPOSE: Test backend detection, identifier fallback and error wrapping

package store_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/store"
	"github.com/arthur-debert/model-extract/pkg/store/badger"
	"github.com/arthur-debert/model-extract/pkg/store/sqlite"
	"github.com/arthur-debert/model-extract/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	sqlitePath := filepath.Join(dir, "light.sqlite3")
	require.NoError(t, sqlite.Save(sqlitePath, testutil.TrafficLight()))

	badgerPath := filepath.Join(dir, "timed-db")
	require.NoError(t, badger.Save(badgerPath, testutil.TimedLight()))

	yamlPath := testutil.CreateFile(t, dir, "traffic.yml", testutil.TrafficLightYAML)

	tests := []struct {
		location string
		backend  store.Backend
		want     *kripke.Structure
	}{
		{sqlitePath, store.BackendSQLite, testutil.TrafficLight()},
		{badgerPath, store.BackendBadger, testutil.TimedLight()},
		{yamlPath, store.BackendDocument, testutil.TrafficLight()},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			backend, err := store.Detect(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.backend, backend)

			s, err := store.New().Open(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestOpen_IdentifierFallsBackToStem(t *testing.T) {
	s := testutil.TrafficLight()
	s.Identifier = ""
	path := testutil.WriteStructureFile(t, t.TempDir(), "crossing.v2.yaml", s)

	opened, err := store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "crossing.v2", opened.Identifier)
}

func TestOpen_Failures(t *testing.T) {
	dir := t.TempDir()

	invalid := kripke.New("broken").AddState("a", false)
	tests := []struct {
		name     string
		location string
		code     errors.ErrorCode
	}{
		{"missing", filepath.Join(dir, "missing.db"), errors.ErrStoreNotFound},
		{"unsupported_extension", testutil.CreateFile(t, dir, "notes.txt", "hello"), errors.ErrStoreUnsupported},
		{"plain_directory", testutil.CreateDir(t, dir, "plain"), errors.ErrStoreUnsupported},
		{"invalid_document", testutil.CreateFile(t, dir, "bad.json", "{}"), errors.ErrStoreInvalid},
		{"structure_fails_validation", testutil.WriteStructureFile(t, dir, "noinit.yaml", invalid), errors.ErrStoreInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Open(tt.location)
			require.Error(t, err)

			assert.Equal(t, errors.ErrStoreOpen, errors.GetErrorCode(err))
			assert.True(t, errors.IsErrorCode(err, tt.code), "%v", err)
			assert.Equal(t, tt.location, errors.GetErrorDetails(err)["location"])
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "a", store.Stem("/x/a.db"))
	assert.Equal(t, "model", store.Stem("model"))
	assert.Equal(t, "dir", store.Stem("/x/dir/"))
}
