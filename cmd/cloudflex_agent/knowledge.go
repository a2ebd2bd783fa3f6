package main

import (
	"fmt"

	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/cloudflex/assistant/internal/observability"
	"github.com/spf13/cobra"
)

var knowledgeStrict bool

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Work with the knowledge tables",
}

var knowledgeValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate knowledge tables against the schema",
	Long:  "Validate a knowledge JSON file (or the embedded tables) against the schema and report cross-reference warnings.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKnowledgeValidate,
}

var knowledgeSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the knowledge JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(knowledge.Schema())
		return err
	},
}

func init() {
	knowledgeValidateCmd.Flags().BoolVar(&knowledgeStrict, "strict", false, "Treat warnings as errors")
	knowledgeCmd.AddCommand(knowledgeValidateCmd, knowledgeSchemaCmd)
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledgeValidate(cmd *cobra.Command, args []string) error {
	path := knowledgeFile
	if len(args) == 1 {
		path = args[0]
	}

	var (
		tables *knowledge.Tables
		err    error
	)
	if path == "" {
		path = "embedded"
		tables, err = knowledge.Load()
	} else {
		tables, err = knowledge.LoadFile(path)
	}
	if err != nil {
		return err
	}

	warnings := tables.Validate()
	observability.NewPrinter(cmd.OutOrStdout()).PrintWarnings("KNOWLEDGE: "+path, warnings)
	fmt.Fprintf(cmd.OutOrStdout(), "%d jobs, %d services, %d FAQ entries, %d visa types\n", //nolint:errcheck
		len(tables.Jobs), len(tables.Services), len(tables.FAQEntries), len(tables.Immigration.VisaTypes))

	if knowledgeStrict && len(warnings) > 0 {
		return fmt.Errorf("%d knowledge warnings", len(warnings))
	}
	return nil
}
