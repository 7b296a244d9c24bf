package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/garagon/yarara/internal/analysis"
	"github.com/garagon/yarara/internal/config"
	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/extlint"
	"github.com/garagon/yarara/internal/log"
	"github.com/garagon/yarara/internal/output"
	"github.com/garagon/yarara/internal/semantic"
	"github.com/garagon/yarara/internal/types"
)

var (
	flagFiletype    string
	flagFindSecrets bool
	flagNoExtLint   bool
	flagFailOn      string
	flagVerbose     bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Audit a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&flagFiletype, "filetype", "t", "auto", "File type (yaml, json, auto)")
	checkCmd.Flags().BoolVar(&flagFindSecrets, "find-secrets", false, "Also flag strings that look like embedded credentials")
	checkCmd.Flags().BoolVar(&flagNoExtLint, "no-external-lint", false, "Skip external linters (yamllint, jsonlint)")
	checkCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if warnings at or above this severity (error, warning, info)")
	checkCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug-level diagnostics and per-warning detail")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	cfg := loadCheckConfig(cmd, targetPath)

	if flagVerbose {
		flagLogLevel = "debug"
	}
	logger := log.New(os.Stderr, log.ParseLevel(flagLogLevel))

	format, err := document.ParseFormat(flagFiletype)
	if err != nil {
		return fmt.Errorf("invalid --filetype: %w", err)
	}

	registry := semantic.Builtin()
	registry.Disable(cfg.DisabledRules...)

	analyzer := analysis.New(
		analysis.WithLogger(logger),
		analysis.WithRegistry(registry),
		analysis.WithLinter(extlint.New(nil, logger, 0)),
	)

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	report, err := analyzer.Analyze(ctx, analysis.Request{
		Path:         targetPath,
		Format:       format,
		FindSecrets:  flagFindSecrets,
		ExternalLint: !flagNoExtLint,
	})
	if err != nil {
		// Unreadable target is the one fatal condition; the report
		// already carries the matching warning for display.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return err
	}

	if err := writeOutput(report); err != nil {
		return err
	}

	return checkFailOnThreshold(report)
}

// loadCheckConfig merges .yarara.yml values under explicitly set flags.
func loadCheckConfig(cmd *cobra.Command, targetPath string) config.Config {
	cfg, err := config.Load(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !cmd.Flags().Changed("filetype") && cfg.Filetype != "" {
		flagFiletype = cfg.Filetype
	}
	if !cmd.Flags().Changed("find-secrets") && cfg.FindSecrets {
		flagFindSecrets = true
	}
	if !cmd.Flags().Changed("no-external-lint") && cfg.DisableExternalLint {
		flagNoExtLint = true
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !cmd.Flags().Changed("fail-on") && cfg.FailOn != "" {
		flagFailOn = cfg.FailOn
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		flagLogLevel = cfg.LogLevel
	}
	return cfg
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func writeOutput(report *types.Report) error {
	output.ToolVersion = Version

	if os.Getenv("NO_COLOR") != "" {
		flagNoColor = true
	}
	formatter := output.ByName(flagFormat, flagNoColor, flagVerbose)

	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, report)
}

func checkFailOnThreshold(report *types.Report) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := types.ParseSeverity(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	for _, w := range report.Warnings {
		if w.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
