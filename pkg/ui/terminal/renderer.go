// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/pipeline"
	"github.com/arthur-debert/model-extract/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	successMark = "✓"
	failureMark = "✗"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderReport renders a header, one block per input and a summary line
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	var blocks []string

	formats := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		formats[i] = styles.Render("Format", f)
	}
	header := fmt.Sprintf("%s %s %s",
		styles.Render("Header", "model-extract"),
		styles.Render("FilePath", report.OutputDir),
		strings.Join(formats, " "))
	if report.Timed {
		header += " " + styles.Render("MutedItalic", "(timed)")
	}
	blocks = append(blocks, header)

	for _, o := range report.Outcomes {
		blocks = append(blocks, renderOutcome(o))
	}

	blocks = append(blocks, renderSummary(report))

	_, err := fmt.Fprintln(r.output, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

func renderOutcome(o pipeline.Outcome) string {
	var lines []string

	name := o.Location
	if o.Identifier != "" && o.Identifier != o.Location {
		name = fmt.Sprintf("%s %s", o.Location, styles.Render("Muted", "("+o.Identifier+")"))
	}

	if o.Status == pipeline.StatusSuccess {
		lines = append(lines, fmt.Sprintf("%s %s", styles.Render("Success", successMark), name))
	} else {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.Render("Error", failureMark), name, styles.Render("Muted", string(o.Stage))))
		lines = append(lines, styles.GetStyle("Indent").Render(styles.Render("Error", o.Reason())))
	}

	for _, artifact := range o.Artifacts {
		lines = append(lines, styles.GetStyle("Indent").Render(styles.Render("FilePath", artifact)))
	}

	return strings.Join(lines, "\n")
}

func renderSummary(report *pipeline.Report) string {
	failed := len(report.Failures())
	summary := fmt.Sprintf("%d succeeded, %d failed", report.Succeeded(), failed)
	style := "Success"
	if failed > 0 {
		style = "Warning"
	}
	return styles.GetStyle("Summary").Render(styles.Render(style, summary))
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", styles.Render("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}
