// Package nusmv renders Kripke structures as nuXmv / NuSMV models.
//
// States become the values of one enumerated variable, propositions become
// DEFINEs over it and edges form the TRANS relation. States without
// successors get a self-loop so the relation is total. When clocks are
// used the model is emitted for the continuous time domain of nuXmv; edge
// guards are copied verbatim and must reference clocks by their declared
// names.
package nusmv

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/arthur-debert/model-extract/pkg/views"
)

// Renderer writes <identifier>.smv
type Renderer struct{}

// New is the views.Factory of the nuXmv format
func New(views.Options) views.Renderer {
	return &Renderer{}
}

// Format implements views.Renderer
func (r *Renderer) Format() formats.OutputFormat {
	return formats.NuXmv
}

// Render implements views.Renderer
func (r *Renderer) Render(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
	if usingClocks {
		if err := CheckClocks(s); err != nil {
			return err
		}
	}
	return out.WriteFile(views.ArtifactFile(identifier, formats.NuXmv), []byte(Generate(s, identifier, usingClocks)))
}

// CheckClocks rejects clock names that are SMV keywords. Clocks keep their
// declared names because guards refer to them verbatim.
func CheckClocks(s *kripke.Structure) error {
	for _, c := range s.Clocks {
		if keywords[c] {
			return errors.Newf(errors.ErrRender, "clock %q is a reserved SMV word", c).
				WithDetail("clock", c)
		}
	}
	return nil
}

// Generate returns the SMV text of the structure
func Generate(s *kripke.Structure, identifier string, usingClocks bool) string {
	names := newNamer()

	// clocks first: state and proposition names are renamed around them
	var clocks []string
	if usingClocks {
		for _, c := range s.Clocks {
			clocks = append(clocks, names.reserveVerbatim(c))
		}
	}

	stateNames := make(map[string]string, len(s.States))
	for _, st := range s.States {
		stateNames[st.ID] = names.unique(st.ID, "s_")
	}

	var sb strings.Builder

	if usingClocks {
		sb.WriteString("@TIME_DOMAIN continuous\n\n")
	}
	sb.WriteString(fmt.Sprintf("-- %s\n", strings.ReplaceAll(identifier, "\n", " ")))
	sb.WriteString("MODULE main\n")

	sb.WriteString("VAR\n")
	values := make([]string, len(s.States))
	for i, st := range s.States {
		values[i] = stateNames[st.ID]
	}
	sb.WriteString(fmt.Sprintf("  %s : {%s};\n", stateVar, strings.Join(values, ", ")))
	for _, c := range clocks {
		sb.WriteString(fmt.Sprintf("  %s : clock;\n", c))
	}

	if props := s.Propositions(); len(props) > 0 {
		sb.WriteString("DEFINE\n")
		for _, p := range props {
			sb.WriteString(fmt.Sprintf("  %s := %s;\n", names.unique(p, "p_"), stateIn(s.StatesWith(p), stateNames)))
		}
	}

	initial := make([]string, 0, len(s.States))
	for _, st := range s.InitialStates() {
		initial = append(initial, st.ID)
	}
	init := []string{stateIn(initial, stateNames)}
	for _, c := range clocks {
		init = append(init, c+" = 0")
	}
	sb.WriteString("INIT\n")
	sb.WriteString(fmt.Sprintf("  %s;\n", strings.Join(init, " & ")))

	sb.WriteString("TRANS\n")
	terms := transitions(s, stateNames, clocks, usingClocks)
	sb.WriteString("  " + strings.Join(terms, "\n  | ") + ";\n")

	return sb.String()
}

const stateVar = "state"

func transitions(s *kripke.Structure, stateNames map[string]string, clocks []string, usingClocks bool) []string {
	var terms []string
	for _, st := range s.States {
		edges := s.Successors(st.ID)
		if len(edges) == 0 {
			edges = []kripke.Edge{{Source: st.ID, Target: st.ID}}
		}
		for _, e := range edges {
			conj := []string{fmt.Sprintf("%s = %s", stateVar, stateNames[e.Source])}
			if usingClocks && strings.TrimSpace(e.Guard) != "" {
				conj = append(conj, "("+strings.TrimSpace(e.Guard)+")")
			}
			conj = append(conj, fmt.Sprintf("next(%s) = %s", stateVar, stateNames[e.Target]))
			if usingClocks {
				for _, c := range clocks {
					if contains(e.Resets, c) {
						conj = append(conj, fmt.Sprintf("next(%s) = 0", c))
					} else {
						conj = append(conj, fmt.Sprintf("next(%s) = %s", c, c))
					}
				}
			}
			terms = append(terms, "("+strings.Join(conj, " & ")+")")
		}
	}
	return terms
}

func stateIn(ids []string, stateNames map[string]string) string {
	if len(ids) == 0 {
		return "FALSE"
	}
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = stateNames[id]
	}
	return fmt.Sprintf("%s in {%s}", stateVar, strings.Join(values, ", "))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
