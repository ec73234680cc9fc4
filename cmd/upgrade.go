package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/petseed/internal/migrator"
	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:     "upgrade [target]",
	Aliases: []string{"apply"},
	Short:   "Apply pending migrations",
	Long: `Apply pending migrations in order. With no target (or "head") every
pending migration is applied; otherwise application stops after the named
migration ID.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		target := ""
		if len(args) > 0 {
			target = args[0]
		}

		m := migrator.NewMigrator(adapter, cfg.MigrationsPath)
		applied, err := m.Upgrade(ctx, target)
		if err != nil {
			return err
		}

		if len(applied) > 0 {
			fmt.Printf("\n🎉 Successfully applied %d migration(s)\n", len(applied))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
