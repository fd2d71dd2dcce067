package genconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/model-extract/pkg/config"
	"github.com/arthur-debert/model-extract/pkg/errors"
	"github.com/arthur-debert/model-extract/pkg/logging"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Dir receives the project configuration file in write mode
	Dir   string
	Write bool
}

// GenConfigResult is the generated configuration and the files written
type GenConfigResult struct {
	ConfigContent string   `json:"config_content"`
	FilesWritten  []string `json:"files_written"`
}

// GenConfig outputs or writes the default configuration with every value
// commented out
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &GenConfigResult{
		ConfigContent: commentValues(config.DefaultsContent()),
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	targetPath := filepath.Join(dir, config.ProjectConfigName+".toml")

	if _, err := os.Stat(targetPath); err == nil {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := os.WriteFile(targetPath, []byte(result.ConfigContent), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", targetPath).
			WithDetail("path", targetPath)
	}

	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}

// commentValues comments out every key line, keeping comments and tables
func commentValues(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n")
}
