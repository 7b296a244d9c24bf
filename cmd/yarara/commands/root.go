package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagFormat   string
	flagOutput   string
	flagNoColor  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "yarara",
	Short: "Configuration file auditor for YAML and JSON",
	Long:  `Yarara audits a configuration file and flags likely problems: stale TODO/FIXME comments, risky values such as enabled debug modes or outdated API versions, syntax errors, and (opt-in) strings that look like embedded credentials.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, sarif, markdown, html)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Diagnostic log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
