package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/petseed/internal/config"
	"github.com/Rana718/petseed/internal/database"
	"github.com/spf13/cobra"
)

// loadConfig reads the project config and makes sure its directories exist.
func loadConfig() (*config.Config, error) {
	if !config.IsInitialized() {
		return nil, config.ErrNotInitialized
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

func openProject(ctx context.Context) (*config.Config, database.DatabaseAdapter, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	adapter, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, adapter, nil
}

// confirm asks a yes/no question unless --force was given.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return true, nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (yes/no): ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
