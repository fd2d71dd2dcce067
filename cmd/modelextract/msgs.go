package modelextract

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate GraphViz, nuXmv and GraphML models from Kripke structures"
	MsgFormatsShort    = "List the available output formats"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgGenConfigShort  = "Generate the default configuration file"

	// Status messages
	MsgVersionFormat  = "model-extract version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten     = "Man pages written to %s"
	MsgConfigWritten  = "Configuration written to %s"
	MsgConfigExists   = "Configuration file already exists, nothing written"
	MsgUsageHint      = "Run 'model-extract --help' for usage."
	MsgFormatsHeading = "# Output formats"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format, repeatable: graphviz, nuxmv, graphml"
	MsgFlagGraphViz  = "Generate a GraphViz <identifier>.gv file"
	MsgFlagNuXmv     = "Generate a nuXmv <identifier>.smv file"
	MsgFlagTimed     = "The structures contain clock expressions"
	MsgFlagOutputDir = "Directory to store the generated models"
	MsgFlagReport    = "Report format: auto, term, text, json"
	MsgFlagConfig    = "Additional configuration file (toml or yaml)"
	MsgFlagManDir    = "Directory to write the man pages to"
	MsgFlagWrite     = "Write .model-extract.toml instead of printing"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/formats-long.txt
	msgFormatsLongRaw string
	MsgFormatsLong    = strings.TrimSpace(msgFormatsLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
