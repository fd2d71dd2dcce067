// pkg/views/views_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testutil mocks
// PURPOSE: Test renderer registry resolution and composite rendering

package views_test

import (
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/arthur-debert/model-extract/pkg/testutil"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTable struct {
	built []formats.OutputFormat
	opts  []views.Options
}

func (rt *recordingTable) factories() map[formats.OutputFormat]views.Factory {
	table := make(map[formats.OutputFormat]views.Factory)
	for _, f := range formats.All() {
		f := f
		table[f] = func(opts views.Options) views.Renderer {
			rt.built = append(rt.built, f)
			rt.opts = append(rt.opts, opts)
			return &testutil.MockRenderer{FormatValue: f}
		}
	}
	return table
}

func TestNewRegistry_RequiresEveryFormat(t *testing.T) {
	rt := &recordingTable{}
	table := rt.factories()
	delete(table, formats.GraphML)

	_, err := views.NewRegistry(table)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestNewRegistry_RejectsFormatsOutsideTheClosedSet(t *testing.T) {
	rt := &recordingTable{}
	table := rt.factories()
	table[formats.OutputFormat(99)] = func(views.Options) views.Renderer { return nil }

	_, err := views.NewRegistry(table)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
	assert.Empty(t, rt.built)
}

func TestResolve_InstantiatesOnlySelectedFormats(t *testing.T) {
	rt := &recordingTable{}
	reg, err := views.NewRegistry(rt.factories())
	require.NoError(t, err)
	assert.Equal(t, []string{"graphviz", "nuxmv", "graphml"}, reg.Formats())

	set, err := formats.Select([]formats.OutputFormat{formats.GraphML, formats.GraphViz})
	require.NoError(t, err)

	opts := views.Options{RankDir: "TB", NodeShape: "box"}
	composite, err := reg.Resolve(set, opts)
	require.NoError(t, err)

	assert.Equal(t, []formats.OutputFormat{formats.GraphViz, formats.GraphML}, rt.built)
	assert.Equal(t, []views.Options{opts, opts}, rt.opts)
	assert.Equal(t, []string{"graphviz", "graphml"}, composite.Formats())
}

func TestResolve_EmptySet(t *testing.T) {
	reg, err := views.NewRegistry((&recordingTable{}).factories())
	require.NoError(t, err)

	_, err = reg.Resolve(formats.FormatSet{}, views.DefaultOptions())
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyFormatSelection))
}

func TestComposite_CanonicalOrderAndSameArguments(t *testing.T) {
	var order []string
	record := func(f formats.OutputFormat) func(scope.Writer, *kripke.Structure, string, bool) error {
		return func(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
			order = append(order, f.String()+":"+identifier)
			assert.True(t, usingClocks)
			assert.Equal(t, "timed-light", s.Identifier)
			return nil
		}
	}

	composite := views.NewComposite(
		&testutil.MockRenderer{FormatValue: formats.NuXmv, RenderFunc: record(formats.NuXmv)},
		&testutil.MockRenderer{FormatValue: formats.GraphViz, RenderFunc: record(formats.GraphViz)},
	)

	out := testutil.NewMemoryWriter("/out")
	require.NoError(t, composite.Generate(out, testutil.TimedLight(), "timed-light", true))
	assert.Equal(t, []string{"graphviz:timed-light", "nuxmv:timed-light"}, order)
}

func TestComposite_StopsAtFirstFailureKeepingEarlierArtifacts(t *testing.T) {
	first := &testutil.MockRenderer{FormatValue: formats.GraphViz}
	failing := &testutil.MockRenderer{
		FormatValue: formats.NuXmv,
		RenderFunc: func(scope.Writer, *kripke.Structure, string, bool) error {
			return assert.AnError
		},
	}
	last := &testutil.MockRenderer{FormatValue: formats.GraphML}

	out := testutil.NewMemoryWriter("/out")
	err := views.NewComposite(first, failing, last).Generate(out, testutil.TrafficLight(), "traffic", false)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
	assert.ErrorIs(t, err, assert.AnError)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "nuxmv", details["format"])
	assert.Equal(t, []string{"graphviz"}, details["completed"])

	assert.Equal(t, []string{"traffic.gv"}, out.Names())
	assert.Equal(t, 1, first.CallCount())
	assert.Equal(t, 1, failing.CallCount())
	assert.Equal(t, 0, last.CallCount())
}

func TestArtifactFile(t *testing.T) {
	assert.Equal(t, "traffic.gv", views.ArtifactFile("traffic", formats.GraphViz))
	assert.Equal(t, "a_b.smv", views.ArtifactFile("a/b", formats.NuXmv))
}
