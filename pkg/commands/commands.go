// Package commands provides high-level command implementations for
// model-extract.
//
// This package is the orchestration layer between the CLI and the batch
// pipeline. Each command is implemented in its own subdirectory:
//   - export/    - ExportModels command
//   - genconfig/ - GenConfig command
//
// This file re-exports the command functions so callers depend on a single
// package.
package commands

import (
	"github.com/arthur-debert/model-extract/pkg/commands/export"
	"github.com/arthur-debert/model-extract/pkg/commands/genconfig"
	"github.com/arthur-debert/model-extract/pkg/pipeline"
)

// ExportModels renders every input into the selected formats.
type ExportModelsOptions = export.ExportModelsOptions

func ExportModels(opts ExportModelsOptions) (*pipeline.Report, error) {
	return export.ExportModels(opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions
type GenConfigResult = genconfig.GenConfigResult

func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
