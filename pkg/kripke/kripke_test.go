// pkg/kripke/kripke_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test structure construction, queries and validation

package kripke_test

import (
	"testing"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trafficLight() *kripke.Structure {
	return kripke.New("traffic").
		AddState("red", true, "stop").
		AddState("green", false, "go").
		AddState("yellow", false, "stop", "slow").
		AddEdge("red", "green", "").
		AddEdge("green", "yellow", "").
		AddEdge("yellow", "red", "")
}

func TestStructure_Queries(t *testing.T) {
	s := trafficLight()

	require.NoError(t, s.Validate())
	assert.Equal(t, []string{"stop", "go", "slow"}, s.Propositions())
	assert.Equal(t, []string{"red", "yellow"}, s.StatesWith("stop"))
	assert.Len(t, s.InitialStates(), 1)
	assert.Equal(t, "red", s.InitialStates()[0].ID)
	assert.Equal(t, []kripke.Edge{{Source: "green", Target: "yellow"}}, s.Successors("green"))
	assert.False(t, s.Timed())

	st, ok := s.State("yellow")
	require.True(t, ok)
	assert.True(t, st.Has("slow"))

	_, ok = s.State("blue")
	assert.False(t, ok)
}

func TestStructure_AddStateMerges(t *testing.T) {
	s := kripke.New("m").
		AddState("a", false, "p").
		AddState("a", true, "p", "q")

	require.Len(t, s.States, 1)
	assert.True(t, s.States[0].Initial)
	assert.Equal(t, []string{"p", "q"}, s.States[0].Propositions)
}

func TestStructure_Timed(t *testing.T) {
	s := kripke.New("timed").
		AddClock("c").
		AddClock("c").
		AddState("a", true).
		AddEdge("a", "a", "c >= 5", "c")

	require.NoError(t, s.Validate())
	assert.Equal(t, []string{"c"}, s.Clocks)
	assert.True(t, s.Timed())
	assert.Equal(t, "timed (1 states, 1 edges, 1 clocks)", s.String())
}

func TestStructure_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *kripke.Structure
		wantMsg string
	}{
		{
			name:    "no_states",
			build:   func() *kripke.Structure { return kripke.New("empty") },
			wantMsg: "no states",
		},
		{
			name: "duplicate_state",
			build: func() *kripke.Structure {
				s := kripke.New("dup")
				s.States = []kripke.State{{ID: "a", Initial: true}, {ID: "a"}}
				return s
			},
			wantMsg: "duplicate state",
		},
		{
			name: "no_initial_state",
			build: func() *kripke.Structure {
				return kripke.New("m").AddState("a", false)
			},
			wantMsg: "no initial state",
		},
		{
			name: "edge_to_unknown_state",
			build: func() *kripke.Structure {
				return kripke.New("m").AddState("a", true).AddEdge("a", "b", "")
			},
			wantMsg: `unknown state "b"`,
		},
		{
			name: "reset_of_undeclared_clock",
			build: func() *kripke.Structure {
				return kripke.New("m").AddState("a", true).AddEdge("a", "a", "", "x")
			},
			wantMsg: `undeclared clock "x"`,
		},
		{
			name: "clock_name_not_an_identifier",
			build: func() *kripke.Structure {
				return kripke.New("m").AddClock("1c").AddState("a", true)
			},
			wantMsg: `clock "1c" is not an identifier`,
		},
		{
			name: "clock_name_with_operator",
			build: func() *kripke.Structure {
				return kripke.New("m").AddClock("c-1").AddState("a", true)
			},
			wantMsg: "not an identifier",
		},
		{
			name: "empty_state_id",
			build: func() *kripke.Structure {
				return kripke.New("m").AddState(" ", true)
			},
			wantMsg: "empty id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrStoreInvalid))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
