package main

import (
	"fmt"

	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/cloudflex/assistant/internal/matcher"
	"github.com/cloudflex/assistant/internal/observability"
	"github.com/spf13/cobra"
)

var rulesStrict bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the chatbot rule table",
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report triggers that can never decide a match",
	Args:  cobra.NoArgs,
	RunE:  runRulesLint,
}

var rulesListCmd = &cobra.Command{
	Use:   "list [rule]",
	Short: "List rules in match order, or show a single rule",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesList,
}

func init() {
	rulesLintCmd.Flags().BoolVar(&rulesStrict, "strict", false, "Exit with an error when any trigger is shadowed")
	rulesCmd.AddCommand(rulesLintCmd, rulesListCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesLint(cmd *cobra.Command, _ []string) error {
	shadows := matcher.Lint(chatbot.DefaultRules())
	observability.NewPrinter(cmd.OutOrStdout()).PrintShadows(shadows)
	if rulesStrict && len(shadows) > 0 {
		return fmt.Errorf("%d shadowed triggers", len(shadows))
	}
	return nil
}

func runRulesList(cmd *cobra.Command, args []string) error {
	rules := chatbot.DefaultRules()
	list := rules.Rules()
	if len(args) == 1 {
		r, ok := rules.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown rule %q", args[0])
		}
		list = []matcher.Rule{r}
	}
	for _, r := range list {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-14s %v\n", r.Priority, r.Name, r.Triggers) //nolint:errcheck
	}
	return nil
}
