package views

import (
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
)

// Renderer writes the artifacts of one format for a structure
type Renderer interface {
	// Format returns the output format produced by the renderer
	Format() formats.OutputFormat

	// Render writes one or more files named after identifier into out.
	// When usingClocks is false, clock annotations are ignored.
	Render(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error
}

// Factory builds a renderer. Factories must not perform I/O.
type Factory func(opts Options) Renderer

// Options tunes the renderers
type Options struct {
	// RankDir is the GraphViz layout direction (LR, TB, RL, BT)
	RankDir string
	// NodeShape is the GraphViz shape of state nodes
	NodeShape string
}

// DefaultOptions returns the options used when no configuration is loaded
func DefaultOptions() Options {
	return Options{
		RankDir:   "LR",
		NodeShape: "circle",
	}
}

// ArtifactFile returns the file name of an artifact for identifier
func ArtifactFile(identifier string, f formats.OutputFormat) string {
	return scope.ArtifactName(identifier) + f.Extension()
}
