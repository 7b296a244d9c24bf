package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter .yarara.yml configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".yarara.yml")
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("  skip %s (already exists)\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("  create %s\n", path)
	return nil
}

const configTemplate = `# Yarara configuration file auditor
# https://github.com/garagon/yarara

# Declared file type for the target: yaml, json, auto
filetype: auto

# Also flag strings that look like embedded credentials
# find_secrets: true

# Skip the external linters (yamllint, jsonlint)
# disable_external_lint: true

# Output format: terminal, json, sarif, markdown, html
format: terminal

# Exit with code 1 if warnings at or above this severity
# fail_on: error

# Diagnostic log level: debug, info, warn, error
log_level: info

# Semantic rule IDs to skip
# disabled_rules:
#   - YAML_API_VERSION_V1
`
