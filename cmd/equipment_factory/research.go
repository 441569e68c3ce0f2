package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research an equipment class into a structured profile",
	Long:  "Consult the expert personas about an equipment class and synthesise their findings into a structured research profile JSON.",
	RunE:  runResearch,
}

var (
	researchSector    string
	researchSubSector string
	researchFacility  string
	researchClass     string
	researchOutFile   string
)

func init() {
	researchCmd.Flags().StringVar(&researchSector, "sector", "", "Sector name (e.g. Energy)")
	researchCmd.Flags().StringVar(&researchSubSector, "sub-sector", "", "Sub-sector name (e.g. Natural Gas)")
	researchCmd.Flags().StringVar(&researchFacility, "facility", "", "Facility type")
	researchCmd.Flags().StringVar(&researchClass, "class", "", "Equipment class to research (required)")
	researchCmd.Flags().StringVarP(&researchOutFile, "out", "o", "", "Path to write the profile JSON to (default: stdout)")
	_ = researchCmd.MarkFlagRequired("class")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	profile, experts, err := c.researcher.Research(ctx, research.Request{
		Sector:         researchSector,
		SubSector:      researchSubSector,
		Facility:       researchFacility,
		EquipmentClass: researchClass,
	})
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if c.cfg.Verbose {
		c.printer.PrintConsultation(experts)
		c.printer.PrintResearchProfile(profile)
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile JSON: %w", err)
	}

	if researchOutFile != "" {
		if err := os.WriteFile(researchOutFile, jsonBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Profile written to %s\n", researchOutFile)
		return nil
	}

	fmt.Println(string(jsonBytes))
	return nil
}
