// Package main provides the entry point for the equipment factory CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "equipment-factory",
	Short: "DEXPI equipment card generation and curation pipeline",
	Long:  "Equipment Factory generates, validates, and catalogs DEXPI-style equipment cards for industrial facilities using expert persona research and the POSC Caesar reference data library.",
}

var (
	flagConfig  string
	flagAPIKey  string
	flagDBURL   string
	flagVerbose bool
	flagRDL     bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&flagDBURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL env var; omit for in-memory catalog)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed pipeline output")
	rootCmd.PersistentFlags().BoolVar(&flagRDL, "rdl-check", false, "Verify class URIs against the live RDL endpoint")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
