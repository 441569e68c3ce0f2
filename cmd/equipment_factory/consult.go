package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/agents"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

var consultCmd = &cobra.Command{
	Use:   "consult [query]",
	Short: "Ask the expert personas a question in parallel",
	Long:  "Send one question to a panel of expert personas and print every answer. A failed persona is reported without affecting the others.",
	Args:  cobra.ExactArgs(1),
	RunE:  runConsult,
}

var (
	consultPersonas []string
	consultFacility string
	consultClass    string
)

func init() {
	consultCmd.Flags().StringSliceVar(&consultPersonas, "personas", nil,
		fmt.Sprintf("Personas to consult (default: %s)", strings.Join(agents.DefaultConsultPersonas, ",")))
	consultCmd.Flags().StringVar(&consultFacility, "facility", "", "Facility type for context")
	consultCmd.Flags().StringVar(&consultClass, "class", "", "Equipment class for context")

	rootCmd.AddCommand(consultCmd)
}

func runConsult(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	var agentCtx *types.AgentContext
	if consultFacility != "" || consultClass != "" {
		agentCtx = &types.AgentContext{Facility: consultFacility, EquipmentClass: consultClass}
	}

	results := c.agent.Consult(ctx, args[0], consultPersonas, agentCtx)
	c.printer.PrintConsultation(results)

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d experts failed", failed)
	}
	return nil
}
