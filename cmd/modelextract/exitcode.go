package modelextract

import (
	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/spf13/cobra"
)

// Exit statuses of the model-extract binary
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitUsage matches sysexits EX_USAGE
	ExitUsage = 64
)

var usageCodes = map[errors.ErrorCode]bool{
	errors.ErrEmptyFormatSelection: true,
	errors.ErrUnknownFormat:        true,
	errors.ErrInvalidInput:         true,
	errors.ErrConfigLoad:           true,
	errors.ErrConfigParse:          true,
	errors.ErrConfigValid:          true,
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if usageCodes[errors.GetErrorCode(err)] {
		return ExitUsage
	}
	return ExitFailure
}

// usageArgs tags argument validation failures as invalid input
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid arguments")
		}
		return nil
	}
}

// flagError tags flag parsing failures as invalid input
func flagError(cmd *cobra.Command, err error) error {
	return errors.Wrap(err, errors.ErrInvalidInput, "invalid flags")
}
