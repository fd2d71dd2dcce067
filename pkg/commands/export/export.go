package export

import (
	"os"

	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/arthur-debert/model-extract/pkg/pipeline"
	"github.com/arthur-debert/model-extract/pkg/scope"
	"github.com/arthur-debert/model-extract/pkg/store"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/arthur-debert/model-extract/pkg/views/builtin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExportModelsOptions holds options for the export command
type ExportModelsOptions struct {
	// Inputs are structure locations as given on the command line
	Inputs []string
	// Formats are the requested format names; an empty list is an error
	Formats []string
	// OutputDir is created if missing and becomes the working directory
	OutputDir string
	// UsingClocks renders guards, resets and clock variables
	UsingClocks bool
	// WorkDir resolves relative inputs, defaults to the current directory
	WorkDir string
	// AtomicPublish writes each artifact to a temporary file first
	AtomicPublish bool
	// Views tunes the renderers
	Views views.Options

	// Opener, Registry and ScopeOptions replace the defaults in tests
	Opener       pipeline.Opener
	Registry     *views.Registry
	ScopeOptions []scope.Option
}

// ExportModels opens every input and writes one artifact per selected
// format into the output directory. The report is returned even when some
// inputs failed; the error is then an ErrBatchFailed naming them.
func ExportModels(opts ExportModelsOptions) (*pipeline.Report, error) {
	runID := uuid.NewString()
	logger := logging.GetLogger("commands.export").With().Str("run_id", runID).Logger()
	defer logging.LogOperationStart(logger, "export")()

	// Validate the selection before touching the filesystem
	requested, err := formats.ParseAll(opts.Formats)
	if err != nil {
		return nil, err
	}
	selection, err := formats.Select(requested)
	if err != nil {
		return nil, err
	}

	// Inputs are relative to the invocation directory, not the output one
	workDir := opts.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot determine working directory")
		}
	}
	inputs, err := pipeline.ResolveInputs(opts.Inputs, workDir)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = builtin.NewRegistry()
	}
	generator, err := registry.Resolve(selection, opts.Views)
	if err != nil {
		return nil, err
	}

	opener := opts.Opener
	if opener == nil {
		opener = store.New()
	}

	scopeOpts := append([]scope.Option{scope.WithAtomicPublish(opts.AtomicPublish)}, opts.ScopeOptions...)
	out, err := scope.NewManager(scopeOpts...).Establish(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Strs("inputs", opts.Inputs).
		Strs("formats", selection.Names()).
		Str("output_dir", out.Dir()).
		Msg("Exporting models")

	p, err := pipeline.New(opener, generator, out, pipeline.Options{
		UsingClocks: opts.UsingClocks,
		RunID:       runID,
		Formats:     selection.Names(),
		Logger:      &logger,
	})
	if err != nil {
		return nil, err
	}

	report := p.Run(inputs)
	logExport(logger, report)
	return report, report.Err()
}

// logExport logs the export command execution
func logExport(logger zerolog.Logger, report *pipeline.Report) {
	event := logger.Info()
	if failed := report.Failures(); len(failed) > 0 {
		event = logger.Warn().Int("failed", len(failed))
	}
	event.
		Str("command", "export").
		Int("succeeded", report.Succeeded()).
		Strs("artifacts", report.Artifacts()).
		Msg("Export command completed")
}
