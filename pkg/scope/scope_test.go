// pkg/scope/scope_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test output directory establishment and artifact publishing

package scope_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chdirRecorder struct {
	calls []string
	err   error
}

func (r *chdirRecorder) chdir(dir string) error {
	r.calls = append(r.calls, dir)
	return r.err
}

func newManager(fs afero.Fs, rec *chdirRecorder, atomic bool) *scope.Manager {
	return scope.NewManager(
		scope.WithFs(fs),
		scope.WithChdir(rec.chdir),
		scope.WithAtomicPublish(atomic),
	)
}

func TestEstablish_CreatesDirectoryAndChangesIntoIt(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &chdirRecorder{}

	out, err := newManager(fs, rec, true).Establish("/work/models")
	require.NoError(t, err)

	assert.Equal(t, "/work/models", out.Dir())
	assert.Equal(t, []string{"/work/models"}, rec.calls)

	isDir, err := afero.IsDir(fs, "/work/models")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestEstablish_ExistingDirectoryKeepsContents(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/previous.gv", []byte("old"), 0644))

	_, err := newManager(fs, &chdirRecorder{}, true).Establish("/out")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/out/previous.gv")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestEstablish_IsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	rec := &chdirRecorder{}
	m := newManager(fs, rec, true)

	first, err := m.Establish("/out")
	require.NoError(t, err)
	second, err := m.Establish("/out/")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, m.Scope())
	assert.Len(t, rec.calls, 1)
}

func TestEstablish_RelativePathIsIdempotentAfterChdir(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	m := scope.NewManager()

	first, err := m.Establish("models")
	require.NoError(t, err)
	second, err := m.Establish("models")
	require.NoError(t, err)
	third, err := m.Establish("./models/")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, third)
	assert.NoDirExists(t, filepath.Join(first.Dir(), "models"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "models"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEstablish_RejectsSecondDirectory(t *testing.T) {
	m := newManager(afero.NewMemMapFs(), &chdirRecorder{}, true)

	_, err := m.Establish("/out")
	require.NoError(t, err)

	_, err = m.Establish("/elsewhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputDirUnavailable))
}

func TestEstablish_Failures(t *testing.T) {
	t.Run("empty_path", func(t *testing.T) {
		_, err := newManager(afero.NewMemMapFs(), &chdirRecorder{}, true).Establish("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutputDirUnavailable))
	})

	t.Run("path_is_a_file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/out", []byte("x"), 0644))
		rec := &chdirRecorder{}

		_, err := newManager(fs, rec, true).Establish("/out")
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutputDirUnavailable))
		assert.Empty(t, rec.calls)
	})

	t.Run("read_only_filesystem", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

		_, err := newManager(fs, &chdirRecorder{}, true).Establish("/out")
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutputDirUnavailable))
	})

	t.Run("chdir_fails", func(t *testing.T) {
		rec := &chdirRecorder{err: assert.AnError}

		_, err := newManager(afero.NewMemMapFs(), rec, true).Establish("/out")
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutputDirUnavailable))
	})
}

func TestEstablish_RealDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := scope.NewManager().Establish("models")
	require.NoError(t, err)

	require.NoError(t, out.WriteFile("m.gv", []byte("digraph {}")))
	data, err := afero.ReadFile(afero.NewOsFs(), "m.gv")
	require.NoError(t, err)
	assert.Equal(t, "digraph {}", string(data))
	assert.Equal(t, "models", filepath.Base(out.Dir()))
}

func TestWriteFile(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		name := "direct"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			out, err := newManager(fs, &chdirRecorder{}, atomic).Establish("/out")
			require.NoError(t, err)

			require.NoError(t, out.WriteFile("light.gv", []byte("first")))
			require.NoError(t, out.WriteFile("light.gv", []byte("second")))
			require.NoError(t, out.WriteFile("nested/light.smv", []byte("MODULE main")))

			data, err := afero.ReadFile(fs, "/out/light.gv")
			require.NoError(t, err)
			assert.Equal(t, "second", string(data))

			entries, err := afero.ReadDir(fs, "/out")
			require.NoError(t, err)
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			assert.ElementsMatch(t, []string{"light.gv", "nested"}, names, "no temporary files left behind")

			assert.Equal(t, []string{"light.gv", "light.gv", filepath.Join("nested", "light.smv")}, out.Artifacts())
			assert.Equal(t, "/out/light.gv", out.Path("light.gv"))
		})
	}
}

func TestWriteFile_RejectsEscapes(t *testing.T) {
	out, err := newManager(afero.NewMemMapFs(), &chdirRecorder{}, true).Establish("/out")
	require.NoError(t, err)

	for _, name := range []string{"", "/etc/passwd", "../escape.gv", "a/../../escape.gv", "."} {
		err := out.WriteFile(name, []byte("x"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutsideScope), name)
	}
	assert.Empty(t, out.Artifacts())
}

func TestArtifactName(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"traffic", "traffic"},
		{"  traffic  ", "traffic"},
		{"a/b", "a_b"},
		{`a\b`, "a_b"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"tab\there", "tab_here"},
		{"café", "café"},
		{"", "model"},
		{"..", "model"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, scope.ArtifactName(tt.identifier))
		})
	}
}
