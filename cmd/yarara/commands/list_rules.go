package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/semantic"
)

var flagRulesFiletype string

var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List the semantic rules applied to parsed documents",
	RunE:  runListRules,
}

func init() {
	listRulesCmd.Flags().StringVar(&flagRulesFiletype, "filetype", "", "Filter by file type (yaml, json)")
	rootCmd.AddCommand(listRulesCmd)
}

type ruleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Format   string `json:"format"`
	Severity string `json:"severity"`
}

func runListRules(cmd *cobra.Command, args []string) error {
	rules := semantic.Builtin().All()

	if flagRulesFiletype != "" {
		format, err := document.ParseFormat(flagRulesFiletype)
		if err != nil {
			return fmt.Errorf("invalid --filetype: %w", err)
		}
		var filtered []semantic.Rule
		for _, r := range rules {
			if r.Format == format {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		infos := make([]ruleInfo, len(rules))
		for i, r := range rules {
			infos[i] = ruleInfo{
				ID:       r.ID,
				Name:     r.Name,
				Format:   r.Format.String(),
				Severity: r.Severity.String(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tFORMAT\tSEVERITY\n")
	fmt.Fprintf(tw, "--\t----\t------\t--------\n")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Format.String(), r.Severity.String())
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d rules loaded\n", len(rules))

	return nil
}
