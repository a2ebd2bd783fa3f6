package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cloudflex/assistant/internal/chat"
	"github.com/spf13/cobra"
)

var chatNoDelay bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant on the terminal",
	Long:  "Start an interactive conversation. Type a message per line; \"exit\" or EOF ends the session.",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatNoDelay, "no-delay", false, "Reply immediately instead of simulating typing")
	rootCmd.AddCommand(chatCmd)
}

//nolint:errcheck // writing to the terminal
func runChat(cmd *cobra.Command, _ []string) error {
	responder, err := newResponder()
	if err != nil {
		return err
	}

	opts := chat.DefaultOptions()
	if chatNoDelay {
		opts = chat.Options{}
	}

	ctx := cmd.Context()
	sess := chat.NewSession(ctx, responder, opts)
	defer sess.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bot> %s\n", responder.Greeting())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := scanner.Text()
		if word := strings.ToLower(strings.TrimSpace(line)); word == "exit" || word == "quit" {
			break
		}

		msg, err := sess.Submit(ctx, line)
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}
		if !chatNoDelay {
			fmt.Fprintln(out, "bot is typing...")
		}
		if err := sess.Wait(ctx); err != nil {
			return err
		}

		messages := sess.Messages()
		fmt.Fprintf(out, "bot> %s\n", messages[len(messages)-1].Text)
	}
	return scanner.Err()
}
