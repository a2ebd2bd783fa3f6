package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/cloudflex/assistant/internal/interview"
	"github.com/cloudflex/assistant/internal/observability"
	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/spf13/cobra"
)

var interviewOut string

var interviewCmd = &cobra.Command{
	Use:   "interview <file>",
	Short: "Generate mock interview questions for a resume",
	Long:  "Analyze a resume and write the analysis and tailored questions as JSON. An unreadable resume gets the general question set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterview,
}

func init() {
	interviewCmd.Flags().StringVarP(&interviewOut, "out", "o", "", "Write JSON to this file instead of stdout")
	rootCmd.AddCommand(interviewCmd)
}

// interviewPlan is the JSON written by the interview command.
type interviewPlan struct {
	File      string               `json:"file"`
	Fallback  bool                 `json:"fallback"`
	Analysis  scoring.Analysis     `json:"analysis"`
	Questions []interview.Question `json:"questions"`
}

func runInterview(cmd *cobra.Command, args []string) error {
	path := args[0]

	var text string
	doc, err := readDocument(path)
	var extraction *ingestion.ExtractionError
	switch {
	case errors.As(err, &extraction):
		log.Printf("[interview] using fallback questions: %v", err)
	case err != nil:
		return err
	default:
		text = doc.Text
	}

	analysis, questions, fallback := interview.Prepare(text)
	plan := interviewPlan{File: path, Fallback: fallback, Analysis: analysis, Questions: questions}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintAnalysis(path, &plan.Analysis)
		printer.PrintQuestions(questions, fallback)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode interview: %w", err)
	}
	data = append(data, '\n')

	if interviewOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(interviewOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", interviewOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(questions), interviewOut) //nolint:errcheck
	return nil
}
