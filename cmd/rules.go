package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/agentic-research/a11yname/internal/catalog"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var rulesFormat string

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "text", "Output format: text or json")
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active rules and how each one accepts an element",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, dir)
		if err != nil {
			return err
		}
		if rulesFormat == "json" {
			_, err := io.WriteString(cmd.OutOrStdout(), oj.JSON(ruleRecords(cat), &oj.Options{Indent: 2, Sort: true})+"\n")
			return err
		}
		return writeRules(cmd.OutOrStdout(), cat)
	},
}

func writeRules(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCOMPONENT\tACCEPTS")
	for _, r := range cat.Rules {
		var accepts []string
		for _, s := range r.Strategies() {
			accepts = append(accepts, string(s))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Policy.Component, strings.Join(accepts, ", "))
	}
	return tw.Flush()
}

func ruleRecords(cat *catalog.Catalog) []any {
	out := make([]any, 0, len(cat.Rules))
	for _, r := range cat.Rules {
		var strategies []any
		for _, s := range r.Strategies() {
			strategies = append(strategies, string(s))
		}
		rec := map[string]any{
			"name":        r.Name,
			"component":   r.Policy.Component,
			"messageId":   r.Policy.MessageID,
			"message":     r.Message,
			"description": r.Description,
			"strategies":  strategies,
		}
		if len(r.Policy.LabelProps) > 0 {
			rec["labelProps"] = toAny(r.Policy.LabelProps)
		}
		if len(r.Policy.RequiredProps) > 0 {
			rec["requiredProps"] = toAny(r.Policy.RequiredProps)
		}
		out = append(out, rec)
	}
	return out
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
