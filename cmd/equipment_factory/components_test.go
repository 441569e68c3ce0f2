package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexpi-labs/equipment-factory/internal/config"
)

func TestLoadCLIConfig_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	flagAPIKey = "flag-key"
	flagDBURL = ""
	flagConfig = ""
	t.Cleanup(func() { flagAPIKey = "" })

	cfg, err := loadCLIConfig()
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, config.DefaultPort, cfg.Port)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"run", "create", "research", "consult", "chat", "serve", "token"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
