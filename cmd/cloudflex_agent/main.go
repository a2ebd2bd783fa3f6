// Package main provides the cloudflex_agent CLI: the HTTP API server, an
// interactive chat, resume scoring and the MCP tool server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	knowledgeFile string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:           "cloudflex_agent",
	Short:         "CloudFlex IT Solutions assistant",
	Long:          "Rule-based assistant for CloudFlex IT Solutions: chatbot, resume scoring, mock interviews and lead capture over HTTP, CLI and MCP.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&knowledgeFile, "knowledge", "", "Path to a knowledge JSON file (default: embedded tables)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadTables returns the tables from --knowledge, or the embedded ones.
func loadTables(path string) (*knowledge.Tables, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	tables, err := knowledge.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}
	return tables, nil
}

func newResponder() (*chatbot.Responder, error) {
	tables, err := loadTables(knowledgeFile)
	if err != nil {
		return nil, err
	}
	return chatbot.NewResponder(tables, chatbot.DefaultRules()), nil
}
