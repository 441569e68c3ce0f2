package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/pipeline"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a single equipment card",
	Long:  "Run the full pipeline for exactly one card and print it. Use --out to also write the card JSON to a file.",
	RunE:  runCreate,
}

var (
	createSector      string
	createSubSector   string
	createFacility    string
	createClass       string
	createOutFile     string
	createDisplayName string
	createCategory    string
	createDescription string
	createClassURI    string
)

func init() {
	createCmd.Flags().StringVar(&createSector, "sector", "", "Sector name (e.g. Energy)")
	createCmd.Flags().StringVar(&createSubSector, "sub-sector", "", "Sub-sector name (e.g. Natural Gas)")
	createCmd.Flags().StringVar(&createFacility, "facility", "", "Facility type (required)")
	createCmd.Flags().StringVar(&createClass, "class", "", "Equipment class to generate (required)")
	createCmd.Flags().StringVarP(&createOutFile, "out", "o", "", "Path to write the card JSON to")
	createCmd.Flags().StringVar(&createDisplayName, "display-name", "", "Override the generated display name")
	createCmd.Flags().StringVar(&createCategory, "category", "", "Override the equipment category")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Override the generated description")
	createCmd.Flags().StringVar(&createClassURI, "class-uri", "", "Override the RDL component class URI")
	_ = createCmd.MarkFlagRequired("facility")
	_ = createCmd.MarkFlagRequired("class")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	card, run, err := c.orchestrator.GenerateOne(ctx, pipeline.RunRequest{
		Sector:         createSector,
		SubSector:      createSubSector,
		Facility:       createFacility,
		EquipmentClass: createClass,
		Overrides: &pipeline.CardOverrides{
			DisplayName:       createDisplayName,
			Category:          types.EquipmentCategory(createCategory),
			Description:       createDescription,
			ComponentClassURI: createClassURI,
		},
	})
	if err != nil {
		return fmt.Errorf("card generation failed: %w", err)
	}
	if card == nil {
		c.printer.PrintRun(run)
		return fmt.Errorf("no card was stored; see the run log above")
	}

	c.printer.PrintCard(card)

	if createOutFile != "" {
		jsonBytes, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal card JSON: %w", err)
		}
		if err := os.WriteFile(createOutFile, jsonBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Card written to %s\n", createOutFile)
	}
	return nil
}
