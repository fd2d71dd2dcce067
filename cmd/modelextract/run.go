package modelextract

import (
	"fmt"
	"io"

	"github.com/arthur-debert/model-extract/pkg/ui"
)

// Execute runs the command line and renders a failure on stderr in the
// report format of the run. It returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	flags := &rootFlags{}
	rootCmd := newRootCmd(flags)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	code := ExitCode(err)
	renderError(stderr, flags.report, err, code == ExitUsage)
	return code
}

// renderError writes err with the renderer of the requested report format.
// Unparseable formats fall back to auto detection.
func renderError(w io.Writer, report string, err error, usage bool) {
	format, perr := ui.ParseFormat(report)
	if perr != nil {
		format = ui.FormatAuto
	}

	renderer, rerr := ui.NewRenderer(format, w)
	if rerr == nil {
		rerr = renderer.RenderError(err)
	}
	if rerr != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	if usage && format != ui.FormatJSON {
		fmt.Fprintln(w, MsgUsageHint)
	}
}
