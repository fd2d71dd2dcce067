// Package graphviz renders Kripke structures as GraphViz DOT digraphs
package graphviz

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/arthur-debert/model-extract/pkg/views"
)

// Renderer writes <identifier>.gv
type Renderer struct {
	rankDir   string
	nodeShape string
}

// New is the views.Factory of the GraphViz format
func New(opts views.Options) views.Renderer {
	defaults := views.DefaultOptions()
	r := &Renderer{rankDir: opts.RankDir, nodeShape: opts.NodeShape}
	if r.rankDir == "" {
		r.rankDir = defaults.RankDir
	}
	if r.nodeShape == "" {
		r.nodeShape = defaults.NodeShape
	}
	return r
}

// Format implements views.Renderer
func (r *Renderer) Format() formats.OutputFormat {
	return formats.GraphViz
}

// Render implements views.Renderer
func (r *Renderer) Render(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
	dot := r.Generate(s, identifier, usingClocks)
	return out.WriteFile(views.ArtifactFile(identifier, formats.GraphViz), []byte(dot))
}

// Generate returns the DOT text of the structure
func (r *Renderer) Generate(s *kripke.Structure, identifier string, usingClocks bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("digraph %s {\n", quote(identifier)))
	sb.WriteString(fmt.Sprintf("  rankdir=%s;\n", r.rankDir))
	sb.WriteString(fmt.Sprintf("  node [shape=%s];\n", r.nodeShape))
	sb.WriteString("\n")

	// Invisible start points, one per initial state
	for i, st := range s.InitialStates() {
		start := fmt.Sprintf("__start%d", i)
		sb.WriteString(fmt.Sprintf("  %s [shape=point, label=\"\"];\n", start))
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", start, quote(st.ID)))
	}
	sb.WriteString("\n")

	for _, st := range s.States {
		label := escape(st.ID)
		if len(st.Propositions) > 0 {
			label += `\n{` + escape(strings.Join(st.Propositions, ", ")) + "}"
		}
		sb.WriteString(fmt.Sprintf("  %s [label=\"%s\"];\n", quote(st.ID), label))
	}
	sb.WriteString("\n")

	for _, e := range s.Edges {
		sb.WriteString(fmt.Sprintf("  %s -> %s", quote(e.Source), quote(e.Target)))
		if usingClocks {
			if label := edgeLabel(e); label != "" {
				sb.WriteString(fmt.Sprintf(" [label=\"%s\"]", escape(label)))
			}
		}
		sb.WriteString(";\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

// edgeLabel renders "guard / c := 0, d := 0"
func edgeLabel(e kripke.Edge) string {
	resets := make([]string, len(e.Resets))
	for i, c := range e.Resets {
		resets[i] = c + " := 0"
	}

	switch {
	case e.Guard != "" && len(resets) > 0:
		return e.Guard + " / " + strings.Join(resets, ", ")
	case e.Guard != "":
		return e.Guard
	case len(resets) > 0:
		return "/ " + strings.Join(resets, ", ")
	default:
		return ""
	}
}

func quote(id string) string {
	return `"` + escape(id) + `"`
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}
