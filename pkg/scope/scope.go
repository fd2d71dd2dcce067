package scope

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Writer is the part of the scope a renderer needs
type Writer interface {
	// Dir returns the absolute output directory
	Dir() string
	// WriteFile publishes one artifact, name is relative to Dir
	WriteFile(name string, data []byte) error
}

// OutputScope is the single output directory of a run
type OutputScope struct {
	dir    string
	fs     afero.Fs
	atomic bool
	logger zerolog.Logger

	mu        sync.Mutex
	artifacts []string
}

func newOutputScope(base afero.Fs, dir string, atomic bool) *OutputScope {
	return &OutputScope{
		dir:    dir,
		fs:     afero.NewBasePathFs(base, dir),
		atomic: atomic,
		logger: logging.GetLogger("scope").With().Str("dir", dir).Logger(),
	}
}

// Dir returns the absolute output directory
func (s *OutputScope) Dir() string {
	return s.dir
}

// Path returns the absolute path of an artifact name
func (s *OutputScope) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile writes data to name inside the scope. Names that would resolve
// outside the output directory are rejected.
func (s *OutputScope) WriteFile(name string, data []byte) error {
	clean, err := s.resolve(name)
	if err != nil {
		return err
	}

	if parent := filepath.Dir(clean); parent != "." {
		if err := s.fs.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", parent).
				WithDetail("artifact", clean)
		}
	}

	if s.atomic {
		err = s.publish(clean, data)
	} else {
		err = afero.WriteFile(s.fs, clean, data, 0644)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", clean).
			WithDetail("artifact", clean).
			WithDetail("path", s.Path(clean))
	}

	s.mu.Lock()
	s.artifacts = append(s.artifacts, clean)
	s.mu.Unlock()

	s.logger.Debug().
		Str("artifact", clean).
		Str("path", s.Path(clean)).
		Int("bytes", len(data)).
		Bool("atomic", s.atomic).
		Msg("Artifact written")
	return nil
}

// publish writes to a temporary sibling and renames it over name
func (s *OutputScope) publish(name string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(name), "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Chmod(tmpName, 0644); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	if err := s.fs.Rename(tmpName, name); err != nil {
		_ = s.fs.Remove(tmpName)
		return err
	}
	return nil
}

func (s *OutputScope) resolve(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", errors.Newf(errors.ErrOutsideScope, "artifact name %q is not relative to the output directory", name).
			WithDetail("dir", s.dir)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", errors.Newf(errors.ErrOutsideScope, "artifact %q resolves outside the output directory", name).
			WithDetail("dir", s.dir)
	}
	return clean, nil
}

// Artifacts returns the artifact names written so far, in write order
func (s *OutputScope) Artifacts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}
