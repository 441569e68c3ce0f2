package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dexpi-labs/equipment-factory/internal/agents"
	"github.com/dexpi-labs/equipment-factory/internal/catalog"
	"github.com/dexpi-labs/equipment-factory/internal/config"
	"github.com/dexpi-labs/equipment-factory/internal/db"
	"github.com/dexpi-labs/equipment-factory/internal/llm"
	"github.com/dexpi-labs/equipment-factory/internal/observability"
	"github.com/dexpi-labs/equipment-factory/internal/pipeline"
	"github.com/dexpi-labs/equipment-factory/internal/rdl"
	"github.com/dexpi-labs/equipment-factory/internal/research"
)

// components wires the core packages together for a CLI invocation.
type components struct {
	cfg          config.Config
	client       llm.Client
	agent        *agents.Agent
	researcher   *research.Researcher
	orchestrator *pipeline.Orchestrator
	gateway      catalog.Gateway
	runs         db.RunStore
	printer      *observability.Printer
	closers      []func()
}

// Close releases the LLM client and any database pools.
func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// loadCLIConfig merges flags over the config file over environment variables.
func loadCLIConfig() (config.Config, error) {
	cfg := config.Config{
		APIKey:       flagAPIKey,
		DatabaseURL:  flagDBURL,
		RDLLiveCheck: flagRDL,
		Verbose:      flagVerbose,
	}

	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildComponents constructs the full pipeline stack from configuration.
func buildComponents(ctx context.Context) (*components, error) {
	cfg, err := loadCLIConfig()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	c := &components{cfg: cfg, printer: observability.NewPrinter(os.Stdout)}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	c.client = client
	c.closers = append(c.closers, func() { _ = client.Close() })

	if cfg.DatabaseURL != "" {
		gateway, err := catalog.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to catalog: %w", err)
		}
		c.gateway = gateway
		c.closers = append(c.closers, gateway.Close)

		runs, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to run store: %w", err)
		}
		c.runs = runs
		c.closers = append(c.closers, runs.Close)
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no DATABASE_URL configured, using in-memory catalog")
		c.gateway = catalog.NewMemory()
		c.runs = db.NewMemory()
	}

	c.agent = agents.New(client)
	c.researcher = research.New(c.agent, client)

	opts := []pipeline.Option{pipeline.WithRunStore(c.runs)}
	if cfg.RDLLiveCheck {
		var rdlOpts []rdl.ClientOption
		if cfg.RDLEndpoint != "" {
			rdlOpts = append(rdlOpts, rdl.WithEndpoint(cfg.RDLEndpoint))
		}
		opts = append(opts, pipeline.WithURIVerifier(rdl.NewClient(rdlOpts...)))
	}
	c.orchestrator = pipeline.New(c.researcher, client, c.gateway, opts...)

	return c, nil
}
