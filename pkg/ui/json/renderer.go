// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/pipeline"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

type outcomeView struct {
	pipeline.Outcome
	DurationMS int64            `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
	Code       errors.ErrorCode `json:"code,omitempty"`
}

type reportView struct {
	*pipeline.Report
	Outcomes  []outcomeView `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// RenderReport renders the run report, including the reason of every
// failed input
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	view := reportView{
		Report:    report,
		Outcomes:  make([]outcomeView, len(report.Outcomes)),
		Succeeded: report.Succeeded(),
		Failed:    len(report.Failures()),
	}
	for i, o := range report.Outcomes {
		ov := outcomeView{Outcome: o, DurationMS: o.Duration.Milliseconds()}
		if o.Err != nil {
			ov.Error = o.Err.Error()
			ov.Code = errors.GetErrorCode(o.Err)
		}
		if ov.Artifacts == nil {
			ov.Artifacts = []string{}
		}
		view.Outcomes[i] = ov
	}
	return r.encoder.Encode(view)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
