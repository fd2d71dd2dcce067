// Package builtin holds the fixed table of renderer factories
package builtin

import (
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/arthur-debert/model-extract/pkg/views/graphml"
	"github.com/arthur-debert/model-extract/pkg/views/graphviz"
	"github.com/arthur-debert/model-extract/pkg/views/nusmv"
)

// Factories returns one factory per output format
func Factories() map[formats.OutputFormat]views.Factory {
	return map[formats.OutputFormat]views.Factory{
		formats.GraphViz: graphviz.New,
		formats.NuXmv:    nusmv.New,
		formats.GraphML:  graphml.New,
	}
}

// NewRegistry returns the registry of every built-in renderer
func NewRegistry() *views.Registry {
	reg, err := views.NewRegistry(Factories())
	if err != nil {
		// the table above covers the closed format set
		panic(err)
	}
	return reg
}
