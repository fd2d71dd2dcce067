package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
)

// MemoryWriter is an in-memory scope.Writer
type MemoryWriter struct {
	mu    sync.Mutex
	dir   string
	files map[string][]byte
	order []string

	// Error injection, keyed by artifact name
	errorNames map[string]error
}

// NewMemoryWriter returns an empty writer rooted at dir
func NewMemoryWriter(dir string) *MemoryWriter {
	return &MemoryWriter{
		dir:        dir,
		files:      make(map[string][]byte),
		errorNames: make(map[string]error),
	}
}

// Dir implements scope.Writer
func (w *MemoryWriter) Dir() string {
	return w.dir
}

// WriteFile implements scope.Writer
func (w *MemoryWriter) WriteFile(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err, ok := w.errorNames[name]; ok {
		return err
	}
	w.files[name] = append([]byte(nil), data...)
	w.order = append(w.order, name)
	return nil
}

// FailOn makes writes of name fail with err
func (w *MemoryWriter) FailOn(name string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errorNames[name] = err
}

// File returns the content written to name
func (w *MemoryWriter) File(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[name]
	return string(data), ok
}

// Names returns the written artifact names, sorted
func (w *MemoryWriter) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Artifacts returns every write in order, duplicates included
func (w *MemoryWriter) Artifacts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.order...)
}

// MockRenderer is a func-field implementation of views.Renderer
type MockRenderer struct {
	FormatValue formats.OutputFormat
	RenderFunc  func(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error

	mu    sync.Mutex
	Calls []string
}

// Format returns the mock's format
func (m *MockRenderer) Format() formats.OutputFormat {
	return m.FormatValue
}

// Render records the call, then runs RenderFunc or writes a stub artifact
func (m *MockRenderer) Render(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, identifier)
	m.mu.Unlock()

	if m.RenderFunc != nil {
		return m.RenderFunc(out, s, identifier, usingClocks)
	}
	name := scope.ArtifactName(identifier) + m.FormatValue.Extension()
	return out.WriteFile(name, []byte(fmt.Sprintf("%s timed=%t\n", identifier, usingClocks)))
}

// CallCount returns the number of Render calls
func (m *MockRenderer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockOpener is a func-field structure store
type MockOpener struct {
	OpenFunc func(location string) (*kripke.Structure, error)

	// Structures maps a location base name to the structure returned for it
	Structures map[string]*kripke.Structure
	// Errors maps a location base name to the error returned for it
	Errors map[string]error

	mu     sync.Mutex
	Opened []string
}

// Open implements the pipeline's Opener
func (m *MockOpener) Open(location string) (*kripke.Structure, error) {
	m.mu.Lock()
	m.Opened = append(m.Opened, location)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(location)
	}
	key := filepath.Base(location)
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if s, ok := m.Structures[key]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no structure for %s", location)
}
