package scope

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/spf13/afero"
)

// Manager establishes the output scope of a run
type Manager struct {
	fs     afero.Fs
	chdir  func(string) error
	atomic bool

	scope *OutputScope
	// working directory relative paths resolve against
	base string
}

// Option configures a Manager
type Option func(*Manager)

// WithFs sets the filesystem the output directory is created on
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithChdir replaces the function used to change the working directory
func WithChdir(chdir func(string) error) Option {
	return func(m *Manager) {
		m.chdir = chdir
	}
}

// WithAtomicPublish enables publishing artifacts through a temporary file
func WithAtomicPublish(atomic bool) Option {
	return func(m *Manager) {
		m.atomic = atomic
	}
}

// NewManager returns a manager over the OS filesystem
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fs:     afero.NewOsFs(),
		chdir:  os.Chdir,
		atomic: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Establish creates the output directory if needed, makes it the working
// directory and returns its scope. Establishing the same path again returns
// the existing scope; any other path is rejected.
func (m *Manager) Establish(path string) (*OutputScope, error) {
	logger := logging.GetLogger("scope")

	if path == "" {
		return nil, errors.New(errors.ErrOutputDirUnavailable, "output directory cannot be empty")
	}

	abs, err := m.resolve(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOutputDirUnavailable, "cannot resolve output directory %s", path).
			WithDetail("path", path)
	}

	if m.scope != nil {
		if m.scope.dir == abs {
			logger.Trace().Str("dir", abs).Msg("Output directory already established")
			return m.scope, nil
		}
		return nil, errors.Newf(errors.ErrOutputDirUnavailable,
			"output directory already established at %s", m.scope.dir).
			WithDetail("path", path)
	}

	if err := m.fs.MkdirAll(abs, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrOutputDirUnavailable, "cannot create output directory %s", path).
			WithDetail("path", path)
	}

	info, err := m.fs.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOutputDirUnavailable, "cannot inspect output directory %s", path).
			WithDetail("path", path)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrOutputDirUnavailable, "output path %s is not a directory", path).
			WithDetail("path", path)
	}

	if err := m.chdir(abs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrOutputDirUnavailable, "cannot change into output directory %s", path).
			WithDetail("path", path)
	}

	m.scope = newOutputScope(m.fs, abs, m.atomic)
	logger.Info().Str("dir", abs).Bool("atomic", m.atomic).Msg("Output directory established")
	return m.scope, nil
}

// resolve makes path absolute. Relative paths always resolve against the
// working directory of the first call, so they keep their meaning after the
// chdir into the output directory.
func (m *Manager) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if m.base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		m.base = wd
	}
	return filepath.Join(m.base, path), nil
}

// Scope returns the established scope, or nil before Establish succeeded
func (m *Manager) Scope() *OutputScope {
	return m.scope
}
