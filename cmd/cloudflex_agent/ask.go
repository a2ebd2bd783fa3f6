package main

import (
	"fmt"
	"strings"

	"github.com/cloudflex/assistant/internal/observability"
	"github.com/spf13/cobra"
)

var askExplain bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer a single message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "Show the matched rule and trigger")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	responder, err := newResponder()
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	reply := responder.Respond(input)
	if askExplain || verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintReply(input, reply)
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text) //nolint:errcheck
	return nil
}
