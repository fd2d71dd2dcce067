// Package graphml renders Kripke structures as GraphML documents
package graphml

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/beevik/etree"
)

const namespace = "http://graphml.graphdrawing.org/xmlns"

// Renderer writes <identifier>.graphml
type Renderer struct{}

// New is the views.Factory of the GraphML format
func New(views.Options) views.Renderer {
	return &Renderer{}
}

// Format implements views.Renderer
func (r *Renderer) Format() formats.OutputFormat {
	return formats.GraphML
}

// Render implements views.Renderer
func (r *Renderer) Render(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error {
	data, err := Document(s, identifier, usingClocks).WriteToBytes()
	if err != nil {
		return fmt.Errorf("encoding graphml: %w", err)
	}
	return out.WriteFile(views.ArtifactFile(identifier, formats.GraphML), data)
}

type key struct {
	id, target, name, kind string
}

// Document builds the GraphML tree of the structure
func Document(s *kripke.Structure, identifier string, usingClocks bool) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("graphml")
	root.CreateAttr("xmlns", namespace)

	keys := []key{
		{"initial", "node", "initial", "boolean"},
		{"propositions", "node", "propositions", "string"},
	}
	if usingClocks {
		keys = append(keys,
			key{"guard", "edge", "guard", "string"},
			key{"resets", "edge", "resets", "string"},
		)
	}
	for _, k := range keys {
		el := root.CreateElement("key")
		el.CreateAttr("id", k.id)
		el.CreateAttr("for", k.target)
		el.CreateAttr("attr.name", k.name)
		el.CreateAttr("attr.type", k.kind)
	}

	graph := root.CreateElement("graph")
	graph.CreateAttr("id", identifier)
	graph.CreateAttr("edgedefault", "directed")

	for _, st := range s.States {
		node := graph.CreateElement("node")
		node.CreateAttr("id", st.ID)
		data(node, "initial", fmt.Sprintf("%t", st.Initial))
		if len(st.Propositions) > 0 {
			data(node, "propositions", strings.Join(st.Propositions, ","))
		}
	}

	for i, e := range s.Edges {
		edge := graph.CreateElement("edge")
		edge.CreateAttr("id", fmt.Sprintf("e%d", i))
		edge.CreateAttr("source", e.Source)
		edge.CreateAttr("target", e.Target)
		if usingClocks {
			if e.Guard != "" {
				data(edge, "guard", e.Guard)
			}
			if len(e.Resets) > 0 {
				data(edge, "resets", strings.Join(e.Resets, ","))
			}
		}
	}

	doc.Indent(2)
	return doc
}

func data(parent *etree.Element, key, value string) {
	el := parent.CreateElement("data")
	el.CreateAttr("key", key)
	el.SetText(value)
}
