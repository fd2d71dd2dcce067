// Package kripke holds the in-memory Kripke structure shared by the stores
// and the view renderers.
package kripke

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/errors"
)

// State is a node of the structure labeled with atomic propositions
type State struct {
	ID           string   `json:"id" yaml:"id" toml:"id"`
	Initial      bool     `json:"initial,omitempty" yaml:"initial,omitempty" toml:"initial,omitempty"`
	Propositions []string `json:"propositions,omitempty" yaml:"propositions,omitempty" toml:"propositions,omitempty"`
}

// Edge is a transition between two states. Guard and Resets are only
// meaningful for timed structures.
type Edge struct {
	Source string   `json:"source" yaml:"source" toml:"source"`
	Target string   `json:"target" yaml:"target" toml:"target"`
	Guard  string   `json:"guard,omitempty" yaml:"guard,omitempty" toml:"guard,omitempty"`
	Resets []string `json:"resets,omitempty" yaml:"resets,omitempty" toml:"resets,omitempty"`
}

// Structure is a Kripke structure optionally annotated with clocks
type Structure struct {
	Identifier string   `json:"identifier,omitempty" yaml:"identifier,omitempty" toml:"identifier,omitempty"`
	Clocks     []string `json:"clocks,omitempty" yaml:"clocks,omitempty" toml:"clocks,omitempty"`
	States     []State  `json:"states" yaml:"states" toml:"states"`
	Edges      []Edge   `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
}

// New creates an empty structure with the given identifier
func New(identifier string) *Structure {
	return &Structure{Identifier: identifier}
}

// AddState appends a state, or merges the flags and labels into an existing one
func (s *Structure) AddState(id string, initial bool, propositions ...string) *Structure {
	if existing := s.state(id); existing != nil {
		existing.Initial = existing.Initial || initial
		for _, p := range propositions {
			if !existing.Has(p) {
				existing.Propositions = append(existing.Propositions, p)
			}
		}
		return s
	}
	s.States = append(s.States, State{ID: id, Initial: initial, Propositions: propositions})
	return s
}

// AddEdge appends an edge
func (s *Structure) AddEdge(source, target, guard string, resets ...string) *Structure {
	s.Edges = append(s.Edges, Edge{Source: source, Target: target, Guard: guard, Resets: resets})
	return s
}

// AddClock declares a clock once
func (s *Structure) AddClock(name string) *Structure {
	for _, c := range s.Clocks {
		if c == name {
			return s
		}
	}
	s.Clocks = append(s.Clocks, name)
	return s
}

func (s *Structure) state(id string) *State {
	for i := range s.States {
		if s.States[i].ID == id {
			return &s.States[i]
		}
	}
	return nil
}

// State returns the state with the given id
func (s *Structure) State(id string) (State, bool) {
	if st := s.state(id); st != nil {
		return *st, true
	}
	return State{}, false
}

// Has reports whether the state is labeled with p
func (st State) Has(p string) bool {
	for _, label := range st.Propositions {
		if label == p {
			return true
		}
	}
	return false
}

// InitialStates returns the initial states in declaration order
func (s *Structure) InitialStates() []State {
	var initial []State
	for _, st := range s.States {
		if st.Initial {
			initial = append(initial, st)
		}
	}
	return initial
}

// Successors returns the outgoing edges of a state in declaration order
func (s *Structure) Successors(id string) []Edge {
	var out []Edge
	for _, e := range s.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// Propositions returns every proposition in order of first appearance
func (s *Structure) Propositions() []string {
	seen := make(map[string]bool)
	var props []string
	for _, st := range s.States {
		for _, p := range st.Propositions {
			if !seen[p] {
				seen[p] = true
				props = append(props, p)
			}
		}
	}
	return props
}

// StatesWith returns the ids of the states labeled with p
func (s *Structure) StatesWith(p string) []string {
	var ids []string
	for _, st := range s.States {
		if st.Has(p) {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// Timed reports whether the structure declares clocks or carries clock annotations
func (s *Structure) Timed() bool {
	if len(s.Clocks) > 0 {
		return true
	}
	for _, e := range s.Edges {
		if e.Guard != "" || len(e.Resets) > 0 {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants every renderer relies on
func (s *Structure) Validate() error {
	if len(s.States) == 0 {
		return errors.New(errors.ErrStoreInvalid, "structure has no states")
	}

	ids := make(map[string]bool, len(s.States))
	hasInitial := false
	for _, st := range s.States {
		if strings.TrimSpace(st.ID) == "" {
			return errors.New(errors.ErrStoreInvalid, "state with empty id")
		}
		if ids[st.ID] {
			return errors.Newf(errors.ErrStoreInvalid, "duplicate state %q", st.ID).
				WithDetail("state", st.ID)
		}
		ids[st.ID] = true
		hasInitial = hasInitial || st.Initial
	}
	if !hasInitial {
		return errors.New(errors.ErrStoreInvalid, "structure has no initial state")
	}

	clocks := make(map[string]bool, len(s.Clocks))
	for _, c := range s.Clocks {
		if !isIdentifier(c) {
			return errors.Newf(errors.ErrStoreInvalid, "clock %q is not an identifier", c).
				WithDetail("clock", c)
		}
		clocks[c] = true
	}

	for i, e := range s.Edges {
		for _, end := range []string{e.Source, e.Target} {
			if !ids[end] {
				return errors.Newf(errors.ErrStoreInvalid, "edge %d references unknown state %q", i, end).
					WithDetail("edge", i)
			}
		}
		for _, c := range e.Resets {
			if !clocks[c] {
				return errors.Newf(errors.ErrStoreInvalid, "edge %d resets undeclared clock %q", i, c).
					WithDetail("edge", i)
			}
		}
	}

	return nil
}

// isIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]*. Guards
// reference clocks by name, so clock names cannot be rewritten.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// String returns a short summary used in logs
func (s *Structure) String() string {
	return fmt.Sprintf("%s (%d states, %d edges, %d clocks)",
		s.Identifier, len(s.States), len(s.Edges), len(s.Clocks))
}
