package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/kripke"
	"github.com/arthur-debert/model-extract/pkg/scope"
)

// Opener loads a structure from a location
type Opener interface {
	Open(location string) (*kripke.Structure, error)
}

// Generator writes every artifact of a structure
type Generator interface {
	Generate(out scope.Writer, s *kripke.Structure, identifier string, usingClocks bool) error
}

// Scope is an established output scope
type Scope interface {
	scope.Writer
	// Artifacts returns the artifact names written so far, in write order
	Artifacts() []string
}

// Input references one persisted structure
type Input struct {
	// Location is the input as given by the user
	Location string
	// Path is Location resolved against the invocation directory
	Path string
}

// ResolveInputs resolves locations against baseDir. It must run before the
// working directory changes.
func ResolveInputs(locations []string, baseDir string) ([]Input, error) {
	if len(locations) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one kripke structure is required")
	}

	inputs := make([]Input, len(locations))
	for i, location := range locations {
		path := location
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		inputs[i] = Input{Location: location, Path: filepath.Clean(path)}
	}
	return inputs, nil
}

// Status is the result of one input
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Stage names the step an input failed in
type Stage string

const (
	StageOpen   Stage = "open"
	StageRender Stage = "render"
)

// Outcome is the result of processing one input
type Outcome struct {
	Location   string        `json:"location"`
	Identifier string        `json:"identifier,omitempty"`
	Status     Status        `json:"status"`
	Stage      Stage         `json:"stage,omitempty"`
	Artifacts  []string      `json:"artifacts"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// Reason returns the error text of a failed outcome
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Report is the result of a run
type Report struct {
	RunID      string    `json:"run_id"`
	OutputDir  string    `json:"output_dir"`
	Formats    []string  `json:"formats"`
	Timed      bool      `json:"timed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Succeeded returns the number of successful inputs
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// Failures returns the failed outcomes in input order
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailure {
			failed = append(failed, o)
		}
	}
	return failed
}

// Artifacts returns every artifact written during the run
func (r *Report) Artifacts() []string {
	var all []string
	for _, o := range r.Outcomes {
		all = append(all, o.Artifacts...)
	}
	return all
}

// Err returns an ErrBatchFailed error naming every failed input, or nil
// when all inputs succeeded
func (r *Report) Err() error {
	failed := r.Failures()
	if len(failed) == 0 {
		return nil
	}

	locations := make([]string, len(failed))
	for i, o := range failed {
		locations[i] = o.Location
	}
	return errors.Newf(errors.ErrBatchFailed, "%d of %d models failed: %s",
		len(failed), len(r.Outcomes), strings.Join(locations, ", ")).
		WithDetail("failed", locations)
}

// String summarizes the report for logs
func (r *Report) String() string {
	return fmt.Sprintf("%d succeeded, %d failed", r.Succeeded(), len(r.Failures()))
}
