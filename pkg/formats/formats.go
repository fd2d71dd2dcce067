// Package formats defines the closed set of output formats and the
// selection of the formats requested for one run.
package formats

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/errors"
)

// OutputFormat identifies one artifact format. The set is closed: the
// declaration order below is the canonical rendering order.
type OutputFormat int

const (
	// GraphViz renders a DOT digraph for visual inspection
	GraphViz OutputFormat = iota
	// NuXmv renders a symbolic model checker input (nuXmv / NuSMV)
	NuXmv
	// GraphML renders an XML graph exchange document
	GraphML
)

// All returns every output format in canonical order
func All() []OutputFormat {
	return []OutputFormat{GraphViz, NuXmv, GraphML}
}

// String returns the canonical name of the format
func (f OutputFormat) String() string {
	switch f {
	case GraphViz:
		return "graphviz"
	case NuXmv:
		return "nuxmv"
	case GraphML:
		return "graphml"
	default:
		return "unknown"
	}
}

// DisplayName returns the human facing name of the format
func (f OutputFormat) DisplayName() string {
	switch f {
	case GraphViz:
		return "GraphViz"
	case NuXmv:
		return "nuXmv"
	case GraphML:
		return "GraphML"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension of the artifacts of this format
func (f OutputFormat) Extension() string {
	switch f {
	case GraphViz:
		return ".gv"
	case NuXmv:
		return ".smv"
	case GraphML:
		return ".graphml"
	default:
		return ""
	}
}

// Aliases returns the accepted spellings of the format, canonical name first
func (f OutputFormat) Aliases() []string {
	switch f {
	case GraphViz:
		return []string{"graphviz", "gv", "dot"}
	case NuXmv:
		return []string{"nuxmv", "nusmv", "smv"}
	case GraphML:
		return []string{"graphml"}
	default:
		return nil
	}
}

// Description returns a one line help text for the format
func (f OutputFormat) Description() string {
	switch f {
	case GraphViz:
		return "Outputs an <identifier>.gv file for visual inspection."
	case NuXmv:
		return "Outputs an <identifier>.smv file for the nuXmv model checker."
	case GraphML:
		return "Outputs an <identifier>.graphml file for graph tooling."
	default:
		return ""
	}
}

// Valid reports whether f is a member of the closed set
func (f OutputFormat) Valid() bool {
	return f >= GraphViz && f <= GraphML
}

// MarshalText implements encoding.TextMarshaler
func (f OutputFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid output format %d", int(f))
	}
	return []byte(f.String()), nil
}

// Parse parses a format name or alias, case insensitively
func Parse(s string) (OutputFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range All() {
		for _, alias := range f.Aliases() {
			if name == alias {
				return f, nil
			}
		}
	}
	return 0, errors.Newf(errors.ErrUnknownFormat, "unknown output format %q", s).
		WithDetail("accepted", Names())
}

// ParseAll parses every name. An empty input yields an empty result so that
// the empty selection is reported by Select.
func ParseAll(names []string) ([]OutputFormat, error) {
	parsed := make([]OutputFormat, 0, len(names))
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, f)
	}
	return parsed, nil
}

// Names returns the canonical names of all formats
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.String()
	}
	return names
}
