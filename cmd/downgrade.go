package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/petseed/internal/migrator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var downgradeCmd = &cobra.Command{
	Use:     "downgrade",
	Aliases: []string{"down"},
	Short:   "Roll back applied migrations",
	Long:    `Run the down section of the most recently applied migrations, newest first.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}

		ok, err := confirm(cmd, fmt.Sprintf("Roll back %d migration(s)? Data in dropped tables is lost.", steps))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("❌ Downgrade cancelled")
			return nil
		}

		ctx := context.Background()
		cfg, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		m := migrator.NewMigrator(adapter, cfg.MigrationsPath)
		if _, err := m.Downgrade(ctx, steps); err != nil {
			if errors.Is(err, migrator.ErrNothingToRollback) {
				color.Yellow("Nothing to roll back")
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downgradeCmd)

	downgradeCmd.Flags().IntP("steps", "n", 1, "Number of migrations to roll back")
}
