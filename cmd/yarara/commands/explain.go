package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garagon/yarara/internal/semantic"
)

var explainCmd = &cobra.Command{
	Use:   "explain <RULE_ID>",
	Short: "Show detailed information about a semantic rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

type explainInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	rule, ok := semantic.Builtin().Find(args[0])
	if !ok {
		return fmt.Errorf("rule %q not found", strings.ToUpper(strings.TrimSpace(args[0])))
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		info := explainInfo{
			ID:          rule.ID,
			Name:        rule.Name,
			Format:      rule.Format.String(),
			Severity:    rule.Severity.String(),
			Description: rule.Description,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}

	bold := "\033[1m"
	dim := "\033[2m"
	yellow := "\033[33m"
	red := "\033[31m"
	cyan := "\033[36m"

	sevColor := cyan
	switch rule.Severity.String() {
	case "ERROR":
		sevColor = red
	case "WARNING":
		sevColor = yellow
	}

	fmt.Fprintf(w, "\n%s %s\n", color(dim, "Rule:"), color(bold, rule.ID))
	fmt.Fprintf(w, "%s %s\n", color(dim, "Name:"), rule.Name)
	fmt.Fprintf(w, "%s %s\n", color(dim, "Format:"), rule.Format.String())
	fmt.Fprintf(w, "%s %s\n", color(dim, "Severity:"), color(sevColor, rule.Severity.String()))

	if rule.Description != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", color(bold, "Description:"), rule.Description)
	}

	fmt.Fprintln(w)
	return nil
}
