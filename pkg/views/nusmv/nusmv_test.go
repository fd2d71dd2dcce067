package nusmv_test

import (
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/testutil"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/arthur-debert/model-extract/pkg/views/nusmv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Untimed(t *testing.T) {
	expected := `-- traffic
MODULE main
VAR
  state : {red, green, yellow};
DEFINE
  stop := state in {red, yellow};
  go := state in {green};
  slow := state in {yellow};
INIT
  state in {red};
TRANS
  (state = red & next(state) = green)
  | (state = green & next(state) = yellow)
  | (state = yellow & next(state) = red);
`
	assert.Equal(t, expected, nusmv.Generate(testutil.TrafficLight(), "traffic", false))
}

func TestGenerate_Timed(t *testing.T) {
	expected := `@TIME_DOMAIN continuous

-- timed-light
MODULE main
VAR
  state : {red, green};
  c : clock;
DEFINE
  stop := state in {red};
  go := state in {green};
INIT
  state in {red} & c = 0;
TRANS
  (state = red & (c >= 30) & next(state) = green & next(c) = 0)
  | (state = green & (c >= 20) & next(state) = red & next(c) = 0);
`
	assert.Equal(t, expected, nusmv.Generate(testutil.TimedLight(), "timed-light", true))
}

func TestGenerate_TimedStructureRenderedUntimed(t *testing.T) {
	smv := nusmv.Generate(testutil.TimedLight(), "timed-light", false)

	assert.NotContains(t, smv, "@TIME_DOMAIN")
	assert.NotContains(t, smv, "clock")
	assert.Contains(t, smv, "(state = red & next(state) = green)")
}

func TestGenerate_DeadlockGetsSelfLoop(t *testing.T) {
	smv := nusmv.Generate(testutil.Deadlocked(), "deadlock", false)
	assert.Contains(t, smv, "| (state = end & next(state) = end);")
}

func TestGenerate_ClocksNotResetKeepTheirValue(t *testing.T) {
	s := kripke.New("two-clocks").
		AddClock("x").
		AddClock("y").
		AddState("a", true).
		AddEdge("a", "a", "", "x")

	smv := nusmv.Generate(s, "two-clocks", true)
	assert.Contains(t, smv, "INIT\n  state in {a} & x = 0 & y = 0;")
	assert.Contains(t, smv, "(state = a & next(state) = a & next(x) = 0 & next(y) = y)")
}

func TestGenerate_StateNamedLikeClockIsRenamed(t *testing.T) {
	s := kripke.New("clash").
		AddClock("x").
		AddState("x", true).
		AddState("y", false).
		AddEdge("x", "y", "x > 1", "x")

	smv := nusmv.Generate(s, "clash", true)
	assert.Contains(t, smv, "state : {x_2, y};\n  x : clock;")
	assert.Contains(t, smv, "(state = x_2 & (x > 1) & next(state) = y & next(x) = 0)")

	untimed := nusmv.Generate(s, "clash", false)
	assert.Contains(t, untimed, "state : {x, y};")
}

func TestRender_RejectsKeywordClock(t *testing.T) {
	s := kripke.New("kw").
		AddClock("time").
		AddState("a", true)
	out := testutil.NewMemoryWriter("/out")
	r := nusmv.New(views.DefaultOptions())

	err := r.Render(out, s, "kw", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
	_, written := out.File("kw.smv")
	assert.False(t, written)

	require.NoError(t, r.Render(out, s, "kw", false))
}

func TestGenerate_SanitizesIdentifiers(t *testing.T) {
	s := kripke.New("m").
		AddState("1st state", true, "is-open", "next").
		AddState("state", false, "1st state").
		AddEdge("1st state", "state", "")

	smv := nusmv.Generate(s, "m", false)
	assert.Contains(t, smv, "state : {s_1st_state, s_state};")
	assert.Contains(t, smv, "is_open := state in {s_1st_state};")
	assert.Contains(t, smv, "p_next := state in {s_1st_state};")
	assert.Contains(t, smv, "p_1st_state := state in {s_state};")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"red", "red"},
		{"a b", "a_b"},
		{"9lives", "p_9lives"},
		{"TRANS", "p_TRANS"},
		{"", "p_"},
		{"_x", "_x"},
		{"é", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, nusmv.Sanitize(tt.raw, "p_"))
		})
	}
}

func TestRender_WritesArtifact(t *testing.T) {
	out := testutil.NewMemoryWriter("/out")
	r := nusmv.New(views.DefaultOptions())

	assert.Equal(t, formats.NuXmv, r.Format())
	require.NoError(t, r.Render(out, testutil.TrafficLight(), "traffic", false))

	content, ok := out.File("traffic.smv")
	require.True(t, ok)
	assert.Contains(t, content, "MODULE main")
}
