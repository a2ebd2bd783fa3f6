package main

import (
	"github.com/cloudflex/assistant/internal/mcptools"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assistant as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		responder, err := newResponder()
		if err != nil {
			return err
		}
		return mcptools.Serve(version, mcptools.New(responder))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
