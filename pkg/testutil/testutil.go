package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/model-extract/pkg/kripke"
	"gopkg.in/yaml.v3"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// WriteStructureFile writes s as a YAML document store file
func WriteStructureFile(t *testing.T, dir, name string, s *kripke.Structure) string {
	t.Helper()

	data, err := yaml.Marshal(s)
	if err != nil {
		t.Fatalf("Failed to encode structure %s: %v", s.Identifier, err)
	}
	return CreateFile(t, dir, name, string(data))
}

// ReadFile returns the content of path, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
