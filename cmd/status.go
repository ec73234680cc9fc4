package cmd

import (
	"context"

	"github.com/Rana718/petseed/internal/migrator"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Show the current status of all migrations including:
- Total number of migrations
- Number of applied and pending migrations
- Each migration with its status and when it was applied`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		items, err := migrator.NewMigrator(adapter, cfg.MigrationsPath).Status(ctx)
		if err != nil {
			return err
		}

		migrator.PrintStatus(cmd.OutOrStdout(), items)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
