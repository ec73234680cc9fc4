package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/petseed/internal/config"
	"github.com/Rana718/petseed/internal/pets"
	"github.com/Rana718/petseed/internal/seeder"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the pets table with seed data",
	Long: `
Delete every pet and insert a fresh set in one transaction. Running it again
never accumulates rows.

The set comes from --fixture if given, then --fixed (Fido, Whiskers, Hermie
and Slither), otherwise --count random pets drawn from --species.

Examples:
  petseed seed
  petseed seed --count 25 --species Dog,Cat
  petseed seed --fixed
  petseed seed --fixture db/export/pets_2024-01-01_10-00-00.json
  petseed seed --seed 42 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		seedCfg := buildSeedConfig(cmd, cfg)

		if !seedCfg.DryRun {
			exists, err := adapter.CheckTableExists(ctx, pets.TableName)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("table %q does not exist, run 'petseed migrate' and 'petseed upgrade' first", pets.TableName)
			}
		}

		seedValue, _ := cmd.Flags().GetInt64("seed")
		s := seeder.NewSeeder(adapter, seeder.NewDataGenerator(seedValue))

		result, err := s.Seed(ctx, seedCfg)
		if err != nil {
			return err
		}

		if seedCfg.DryRun {
			fmt.Fprintln(cmd.OutOrStdout(), pets.FormatList(result.Pets))
			return nil
		}

		all, err := pets.ForAdapter(adapter).All(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pets.FormatList(all))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	registerSeedFlags(seedCmd)
}

func registerSeedFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("count", "c", 10, "Number of random pets to generate")
	cmd.Flags().StringSlice("species", nil, "Species to draw from (default from config)")
	cmd.Flags().Bool("fixed", false, "Insert the fixed set instead of random pets")
	cmd.Flags().String("fixture", "", "JSON or YAML file with the pets to insert")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 uses the clock)")
	cmd.Flags().Int("batch", 100, "Rows per INSERT statement")
	cmd.Flags().Bool("dry-run", false, "Print the pets without writing them")
}

// buildSeedConfig starts from the config file and lets explicitly set flags
// override it. --fixed drops a fixture that only came from the config file.
func buildSeedConfig(cmd *cobra.Command, cfg *config.Config) seeder.SeedConfig {
	seedCfg := seeder.SeedConfig{
		Count:   cfg.Seed.Count,
		Species: cfg.Seed.Species,
		Fixture: cfg.Seed.Fixture,
		Batch:   cfg.Seed.Batch,
	}
	if cmd.Flags().Changed("count") {
		seedCfg.Count, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("species") {
		seedCfg.Species, _ = cmd.Flags().GetStringSlice("species")
	}
	if cmd.Flags().Changed("fixture") {
		seedCfg.Fixture, _ = cmd.Flags().GetString("fixture")
	}
	if cmd.Flags().Changed("batch") {
		seedCfg.Batch, _ = cmd.Flags().GetInt("batch")
	}
	seedCfg.Fixed, _ = cmd.Flags().GetBool("fixed")
	if seedCfg.Fixed && !cmd.Flags().Changed("fixture") {
		seedCfg.Fixture = ""
	}
	seedCfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	return seedCfg
}
