package builtin_test

import (
	"testing"

	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/arthur-debert/model-extract/pkg/views/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_CoversEveryFormat(t *testing.T) {
	reg := builtin.NewRegistry()
	assert.Equal(t, formats.Names(), reg.Formats())
}

func TestResolve_OnlyRequestedFormats(t *testing.T) {
	set, err := formats.Select([]formats.OutputFormat{formats.NuXmv, formats.GraphViz})
	require.NoError(t, err)

	composite, err := builtin.NewRegistry().Resolve(set, views.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"graphviz", "nuxmv"}, composite.Formats())
}
