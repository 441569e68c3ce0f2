package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/pipeline"
	"github.com/dexpi-labs/equipment-factory/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bulk generation pipeline for one equipment class",
	Long:  "Research an equipment class once, then generate, validate, catalog, and store the requested number of cards for a facility.",
	RunE:  runRun,
}

var (
	runSector    string
	runSubSector string
	runFacility  string
	runClass     string
	runQuantity  int
)

func init() {
	runCmd.Flags().StringVar(&runSector, "sector", "", "Sector name (e.g. Energy)")
	runCmd.Flags().StringVar(&runSubSector, "sub-sector", "", "Sub-sector name (e.g. Natural Gas)")
	runCmd.Flags().StringVar(&runFacility, "facility", "", "Facility type (required)")
	runCmd.Flags().StringVar(&runClass, "class", "", "Equipment class to generate (required)")
	runCmd.Flags().IntVarP(&runQuantity, "quantity", "n", 1, "Number of cards to generate")
	_ = runCmd.MarkFlagRequired("facility")
	_ = runCmd.MarkFlagRequired("class")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	run, err := c.orchestrator.CreateRun(ctx, pipeline.RunRequest{
		Sector:         runSector,
		SubSector:      runSubSector,
		Facility:       runFacility,
		EquipmentClass: runClass,
		Quantity:       runQuantity,
	})
	if err != nil {
		return err
	}

	if err := c.orchestrator.Execute(ctx, run); err != nil {
		c.printer.PrintRun(run)
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	c.printer.PrintRun(run)
	if c.cfg.Verbose {
		for _, entry := range run.Logs {
			fmt.Printf("%s [%s] %s: %s\n", entry.Timestamp.Format("15:04:05"), entry.Level, entry.Stage, entry.Message)
		}
	}

	if run.Status != types.RunCompleted {
		return fmt.Errorf("run %s finished with status %s", run.ID, run.Status)
	}
	return nil
}
