package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with a single persona",
	Long:  "Start an interactive conversation with one persona, or send a single message as an argument.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChat,
}

var chatPersona string

func init() {
	chatCmd.Flags().StringVar(&chatPersona, "persona", "", "Persona to talk to (default: coordinator)")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	var messages []types.ChatMessage

	// Single-shot mode.
	if len(args) == 1 {
		messages = append(messages, types.ChatMessage{Role: "user", Content: args[0]})
		reply, err := c.agent.Chat(ctx, messages, chatPersona, nil)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	// Interactive mode.
	fmt.Println("Type a message, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		messages = append(messages, types.ChatMessage{Role: "user", Content: line})
		reply, err := c.agent.Chat(ctx, messages, chatPersona, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		messages = append(messages, types.ChatMessage{Role: "assistant", Content: reply})
		fmt.Printf("\n%s\n\n", reply)
	}
	return scanner.Err()
}
