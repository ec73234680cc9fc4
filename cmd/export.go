package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/petseed/internal/export"
	"github.com/Rana718/petseed/internal/pets"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the pets table",
	Long: `
Write every pet to the export directory.
Supported formats: json (default), csv, yaml

JSON and YAML exports can be loaded back with 'petseed seed --fixture'.

Examples:
  petseed export
  petseed export --format csv
  petseed export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		format, _ := cmd.Flags().GetString("format")
		exportPath, err := export.Export(ctx, pets.ForAdapter(adapter), cfg.ExportPath, format)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Export completed: %s\n", exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "json", "Output format: json, csv or yaml")
}
