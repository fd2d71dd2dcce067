package pipeline

import (
	"time"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/rs/zerolog"
)

// Options contains the run settings of a pipeline
type Options struct {
	// UsingClocks is passed to every renderer
	UsingClocks bool
	// RunID and Formats are copied into the report
	RunID   string
	Formats []string
	// Logger overrides the component logger
	Logger *zerolog.Logger
}

// Pipeline processes inputs one at a time
type Pipeline struct {
	opener    Opener
	generator Generator
	out       Scope
	opts      Options
	logger    zerolog.Logger
}

// New returns a pipeline writing into an established scope
func New(opener Opener, generator Generator, out Scope, opts Options) (*Pipeline, error) {
	if out == nil {
		return nil, errors.New(errors.ErrOutputDirUnavailable, "pipeline requires an established output directory")
	}
	if opener == nil || generator == nil {
		return nil, errors.New(errors.ErrInternal, "pipeline requires a store and a renderer")
	}

	logger := logging.GetLogger("pipeline")
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "pipeline").Logger()
	}

	return &Pipeline{
		opener:    opener,
		generator: generator,
		out:       out,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Run processes every input in order and returns the report. Per input
// failures are recorded, never returned.
func (p *Pipeline) Run(inputs []Input) *Report {
	report := &Report{
		RunID:     p.opts.RunID,
		OutputDir: p.out.Dir(),
		Formats:   p.opts.Formats,
		Timed:     p.opts.UsingClocks,
		StartedAt: time.Now(),
		Outcomes:  make([]Outcome, 0, len(inputs)),
	}

	p.logger.Info().
		Int("inputs", len(inputs)).
		Strs("formats", p.opts.Formats).
		Bool("timed", p.opts.UsingClocks).
		Msg("Starting batch")

	seen := make(map[string]string)
	for i, input := range inputs {
		outcome := p.process(input)

		if outcome.Identifier != "" {
			if previous, ok := seen[outcome.Identifier]; ok {
				p.logger.Warn().
					Str("identifier", outcome.Identifier).
					Str("location", input.Location).
					Str("previous", previous).
					Msg("Identifier already used in this run, artifacts overwritten")
			} else {
				seen[outcome.Identifier] = input.Location
			}
		}

		p.logger.Debug().
			Int("index", i).
			Str("location", input.Location).
			Str("status", string(outcome.Status)).
			Msg("Input processed")
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.FinishedAt = time.Now()
	p.logger.Info().Str("result", report.String()).Msg("Batch finished")
	return report
}

func (p *Pipeline) process(input Input) Outcome {
	start := time.Now()
	logger := p.logger.With().Str("location", input.Location).Logger()

	outcome := Outcome{
		Location:  input.Location,
		Status:    StatusFailure,
		Artifacts: []string{},
	}

	path := input.Path
	if path == "" {
		path = input.Location
	}

	// 1. Open the structure
	structure, err := p.opener.Open(path)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot open structure")
		outcome.Stage = StageOpen
		outcome.Err = classify(err, errors.ErrStoreOpen, StageOpen, input.Location)
		outcome.Duration = time.Since(start)
		return outcome
	}
	outcome.Identifier = structure.Identifier

	if structure.Timed() && !p.opts.UsingClocks {
		logger.Warn().
			Str("identifier", structure.Identifier).
			Int("clocks", len(structure.Clocks)).
			Msg("Structure has clock annotations but clocks are off, guards and resets are dropped")
	}

	// 2. Render every selected format
	before := len(p.out.Artifacts())
	err = p.generator.Generate(p.out, structure, structure.Identifier, p.opts.UsingClocks)
	if written := p.out.Artifacts(); len(written) > before {
		outcome.Artifacts = append(outcome.Artifacts, written[before:]...)
	}
	outcome.Duration = time.Since(start)

	if err != nil {
		logger.Error().Err(err).Strs("artifacts", outcome.Artifacts).Msg("Cannot render structure")
		outcome.Stage = StageRender
		outcome.Err = classify(err, errors.ErrRender, StageRender, input.Location)
		return outcome
	}

	logger.Info().
		Str("identifier", structure.Identifier).
		Strs("artifacts", outcome.Artifacts).
		Dur("duration", outcome.Duration).
		Msg("Structure exported")
	outcome.Status = StatusSuccess
	return outcome
}

var stageMessages = map[Stage]string{
	StageOpen:   "cannot open structure",
	StageRender: "cannot render structure",
}

// classify makes sure err carries code, wrapping foreign errors
func classify(err error, code errors.ErrorCode, stage Stage, location string) error {
	if errors.GetErrorCode(err) == code {
		return err
	}
	return errors.Wrapf(err, code, "%s %s", stageMessages[stage], location).
		WithDetails(map[string]interface{}{
			"location": location,
			"stage":    string(stage),
		})
}
