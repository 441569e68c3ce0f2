package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dexpi-labs/equipment-factory/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes the agent, research, and pipeline run endpoints.",
	RunE:  runServe,
}

var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Issue a bearer token for the API server",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or 8080)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	c, err := buildComponents(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	port := servePort
	if port == 0 {
		port = c.cfg.Port
	}

	srv := server.New(server.Config{Port: port, JWTSecret: c.cfg.JWTSecret}, server.Deps{
		Agent:        c.agent,
		Researcher:   c.researcher,
		Orchestrator: c.orchestrator,
		Client:       c.client,
		Gateway:      c.gateway,
		Runs:         c.runs,
	})

	return srv.Start()
}

func runToken(_ *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set JWT_SECRET_KEY environment variable)")
	}

	token, err := server.NewJWTService(cfg.JWTSecret, 0).GenerateToken(args[0])
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
