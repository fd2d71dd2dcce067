package modelextract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/model-extract/internal/version"
	"github.com/arthur-debert/model-extract/pkg/commands"
	"github.com/arthur-debert/model-extract/pkg/config"
	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/formats"
	"github.com/arthur-debert/model-extract/pkg/logging"
	"github.com/arthur-debert/model-extract/pkg/ui"
	"github.com/arthur-debert/model-extract/pkg/views"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// rootFlags holds the flags of the export command
type rootFlags struct {
	verbosity  int
	formats    []string
	graphviz   bool
	nuxmv      bool
	timed      bool
	outputDir  string
	report     string
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootFlags{})
}

func newRootCmd(flags *rootFlags) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "model-extract [flags] <kripke-structure>...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)

	// Export flags
	rootCmd.Flags().StringSliceVarP(&flags.formats, "format", "f", nil, MsgFlagFormat)
	rootCmd.Flags().BoolVarP(&flags.graphviz, "graphviz", "g", false, MsgFlagGraphViz)
	rootCmd.Flags().BoolVarP(&flags.nuxmv, "nuxmv", "n", false, MsgFlagNuXmv)
	rootCmd.Flags().BoolVar(&flags.timed, "timed", false, MsgFlagTimed)
	rootCmd.Flags().StringVarP(&flags.outputDir, "output-directory", "o", "models", MsgFlagOutputDir)
	rootCmd.Flags().StringVar(&flags.report, "report", "auto", MsgFlagReport)
	rootCmd.Flags().StringVar(&flags.configFile, "config", "", MsgFlagConfig)

	_ = rootCmd.RegisterFlagCompletionFunc("format", formatCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("report", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.SetFlagErrorFunc(flagError)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "info",
		Title: "INFO:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// runExport loads the configuration, exports every input and renders the
// report. The report is rendered even when some inputs failed.
func runExport(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logging.GetLogger("cmd.export")

	workDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "cannot determine working directory")
	}

	cfg, err := config.Load(config.LoadOptions{
		WorkDir:    workDir,
		ConfigFile: flags.configFile,
		Overrides:  overrides(cmd, flags),
	})
	if err != nil {
		return err
	}
	if !cfg.Logging.File {
		logging.SetupLogger(flags.verbosity, logging.WithoutFile())
	}
	// failures after this point are rendered in the configured format
	flags.report = cfg.Report.Format

	reportFormat, err := ui.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(reportFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	report, err := commands.ExportModels(commands.ExportModelsOptions{
		Inputs:        args,
		Formats:       cfg.Output.Formats,
		OutputDir:     cfg.Output.Directory,
		UsingClocks:   cfg.Input.Timed,
		WorkDir:       workDir,
		AtomicPublish: cfg.Publish.Atomic,
		Views: views.Options{
			RankDir:   cfg.GraphViz.RankDir,
			NodeShape: cfg.GraphViz.NodeShape,
		},
	})
	if report != nil {
		if rerr := renderer.RenderReport(report); rerr != nil {
			logger.Error().Err(rerr).Msg("Failed to render report")
		}
	}
	return err
}

// message renders a one-line status message on the command output
func message(cmd *cobra.Command, msg string) error {
	renderer, err := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderMessage(msg)
}

// overrides maps the flags the user set to configuration keys
func overrides(cmd *cobra.Command, flags *rootFlags) map[string]interface{} {
	values := make(map[string]interface{})

	if cmd.Flags().Changed("output-directory") {
		values["output.directory"] = flags.outputDir
	}
	if cmd.Flags().Changed("timed") {
		values["input.timed"] = flags.timed
	}
	if cmd.Flags().Changed("report") {
		values["report.format"] = flags.report
	}
	if names, ok := requestedFormats(cmd, flags); ok {
		values["output.formats"] = names
	}

	return values
}

// requestedFormats merges --format with the boolean shortcuts. It returns
// false when no format flag was given, so the configured default applies.
// An explicit empty --format= yields an empty, non-nil selection.
func requestedFormats(cmd *cobra.Command, flags *rootFlags) ([]string, bool) {
	changed := cmd.Flags().Changed("format")
	if !changed && !flags.graphviz && !flags.nuxmv {
		return nil, false
	}

	names := []string{}
	if changed {
		for _, name := range flags.formats {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	if flags.graphviz {
		names = append(names, formats.GraphViz.String())
	}
	if flags.nuxmv {
		names = append(names, formats.NuXmv.String())
	}
	return names, true
}

// formatCompletion completes --format values
func formatCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, f := range formats.All() {
		if strings.HasPrefix(f.String(), toComplete) {
			completions = append(completions, f.String()+"\t"+f.Description())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		Long:    MsgFormatsLong,
		GroupID: "info",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := formatsMarkdown()
			if !isTerminal() {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to create markdown renderer")
			}
			out, err := renderer.Render(md)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render formats")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// formatsMarkdown describes the closed format set as a markdown table
func formatsMarkdown() string {
	var b strings.Builder
	b.WriteString(MsgFormatsHeading + "\n\n")
	b.WriteString("| Format | Names | Extension | Description |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, f := range formats.All() {
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n",
			f.DisplayName(), strings.Join(f.Aliases(), ", "), f.Extension(), f.Description())
	}
	return b.String()
}

func newGenConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{Write: write})
			if err != nil {
				return err
			}

			switch {
			case !write:
				_, err = fmt.Fprint(cmd.OutOrStdout(), result.ConfigContent)
			case len(result.FilesWritten) == 0:
				err = message(cmd, MsgConfigExists)
			default:
				err = message(cmd, fmt.Sprintf(MsgConfigWritten, result.FilesWritten[0]))
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, info.Version, info.Commit, info.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "MODEL-EXTRACT",
				Section: "1",
				Source:  "model-extract " + version.Version,
				Manual:  "model-extract manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man pages")
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				abs = dir
			}
			return message(cmd, fmt.Sprintf(MsgManWritten, abs))
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "man", MsgFlagManDir)
	return cmd
}
