package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/cloudflex/assistant/internal/observability"
	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	scoreJSON        bool
	scoreConcurrency int
)

var scoreResumeCmd = &cobra.Command{
	Use:   "score-resume <file>...",
	Short: "Score resume files",
	Long:  "Extract text from PDF, DOCX, HTML or plain-text resumes and score them. Files are processed concurrently.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScoreResume,
}

func init() {
	scoreResumeCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print results as JSON")
	scoreResumeCmd.Flags().IntVarP(&scoreConcurrency, "concurrency", "c", 4, "Maximum files processed at once")
	rootCmd.AddCommand(scoreResumeCmd)
}

// scoreResult is one file's outcome; exactly one of Analysis and Error is set.
type scoreResult struct {
	File     string            `json:"file"`
	Kind     ingestion.Kind    `json:"kind,omitempty"`
	Words    int               `json:"words,omitempty"`
	Analysis *scoring.Analysis `json:"analysis,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func runScoreResume(cmd *cobra.Command, args []string) error {
	if scoreConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	results := make([]scoreResult, len(args))
	var g errgroup.Group
	g.SetLimit(scoreConcurrency)
	for i, path := range args {
		g.Go(func() error {
			results[i] = scoreFile(path)
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		printer := observability.NewPrinter(out)
		for _, r := range results {
			switch {
			case r.Error != "":
				fmt.Fprintf(out, "%s: error: %s\n", r.File, r.Error) //nolint:errcheck
			case verbose:
				printer.PrintAnalysis(filepath.Base(r.File), r.Analysis)
			default:
				fmt.Fprintf(out, "%s: %d/100 (%s)\n", r.File, r.Analysis.Score.Overall, r.Analysis.Verdict) //nolint:errcheck
			}
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes could not be scored", failed, len(results))
	}
	return nil
}

func scoreFile(path string) scoreResult {
	result := scoreResult{File: path}

	doc, err := readDocument(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	analysis := scoring.Analyze(doc.Text)
	result.Kind = doc.Kind
	result.Words = doc.Words
	result.Analysis = &analysis
	return result
}

// readDocument reads and extracts a resume file, refusing oversized files before reading them.
func readDocument(path string) (*ingestion.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.Size() > ingestion.MaxFileSize {
		return nil, &ingestion.FileTooLargeError{Filename: filepath.Base(path), Size: int(info.Size()), Limit: ingestion.MaxFileSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ingestion.Extract(filepath.Base(path), data)
}
