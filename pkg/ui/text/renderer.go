// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/pipeline"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReport writes one line per input followed by a summary
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Exported %d model(s) to %s [%s]\n",
		len(report.Outcomes), report.OutputDir, strings.Join(report.Formats, ", "))

	for _, o := range report.Outcomes {
		if o.Status == pipeline.StatusSuccess {
			fmt.Fprintf(&b, "  ok    %s -> %s\n", o.Location, strings.Join(o.Artifacts, ", "))
			continue
		}
		fmt.Fprintf(&b, "  FAIL  %s (%s): %s\n", o.Location, o.Stage, o.Reason())
		if len(o.Artifacts) > 0 {
			fmt.Fprintf(&b, "        kept %s\n", strings.Join(o.Artifacts, ", "))
		}
	}

	fmt.Fprintf(&b, "%d succeeded, %d failed\n", report.Succeeded(), len(report.Failures()))

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
