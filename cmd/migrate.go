package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/petseed/internal/database"
	"github.com/Rana718/petseed/internal/migrator"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [migration_name]",
	Short: "Create a new migration",
	Long: `Create a new migration file in the migrations directory.

Unless --empty is given the pets table is compared against the database and
the existing migrations; if nothing creates it yet, the CREATE TABLE and its
DROP are written for you.

If no name is provided, you will be prompted to enter one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		migrationName, _ := cmd.Flags().GetString("message")
		if len(args) > 0 {
			migrationName = strings.Join(args, " ")
		}
		if migrationName == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Enter migration name: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			migrationName, err = reader.ReadString('\n')
			if err != nil && migrationName == "" {
				return fmt.Errorf("failed to read migration name: %w", err)
			}
			migrationName = strings.TrimSpace(migrationName)
		}

		if migrationName == "" {
			return fmt.Errorf("migration name cannot be empty")
		}

		empty, _ := cmd.Flags().GetBool("empty")
		ctx := context.Background()

		var adapter database.DatabaseAdapter
		if !empty {
			adapter, err = database.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer adapter.Close()
		} else {
			adapter = database.NewAdapter(cfg.Database.Provider)
		}

		m := migrator.NewMigrator(adapter, cfg.MigrationsPath)
		if _, err := m.GenerateMigration(ctx, migrationName, !empty); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringP("message", "m", "", "Migration name")
	migrateCmd.Flags().Bool("empty", false, "Write a blank migration without inspecting the database")
}
