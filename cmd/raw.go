package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rana718/petseed/internal/database/common"
	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw <sql-file>",
	Short: "Execute a raw SQL file against the database",
	Long: `
Execute a raw SQL file directly against the configured database. A file
holding a single read query prints its rows; anything else runs as a script
in one transaction.

Examples:
  petseed raw script.sql
  petseed raw queries/old_pets.sql`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	sqlFile := args[0]

	sqlContent, err := os.ReadFile(sqlFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("SQL file not found: %s", sqlFile)
		}
		return fmt.Errorf("failed to read SQL file: %w", err)
	}

	statements := common.ParseSQLStatements(string(sqlContent))
	if len(statements) == 0 {
		return fmt.Errorf("no SQL statements found in file: %s", sqlFile)
	}

	ctx := context.Background()
	cfg, adapter, err := openProject(ctx)
	if err != nil {
		return err
	}
	defer adapter.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📄 Executing SQL file: %s\n", sqlFile)
	fmt.Fprintf(out, "🎯 Database: %s\n\n", cfg.Database.Provider)

	if len(statements) == 1 && common.IsReadQuery(statements[0]) {
		result, err := adapter.ExecuteQuery(ctx, statements[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ Query executed successfully\n")
		if len(result.Rows) == 0 {
			fmt.Fprintln(out, "📊 No rows returned")
			return nil
		}
		fmt.Fprintf(out, "📊 %d row(s) returned\n\n", len(result.Rows))
		displayResultsTable(out, result.Columns, result.Rows)
		return nil
	}

	fmt.Fprintf(out, "📝 Found %d SQL statement(s)\n", len(statements))
	if err := adapter.ExecuteStatements(ctx, string(sqlContent)); err != nil {
		return err
	}
	fmt.Fprintf(out, "🎉 All statements executed successfully!\n")
	return nil
}

func displayResultsTable(out io.Writer, columns []string, rows []map[string]interface{}) {
	colWidths := make(map[string]int, len(columns))
	for _, col := range columns {
		colWidths[col] = len(col)
	}
	for _, row := range rows {
		for _, col := range columns {
			if n := len(formatValue(row[col])); n > colWidths[col] {
				colWidths[col] = n
			}
		}
	}

	border := func(left, mid, right string) {
		fmt.Fprint(out, left)
		for i, col := range columns {
			fmt.Fprint(out, strings.Repeat("─", colWidths[col]+2))
			if i < len(columns)-1 {
				fmt.Fprint(out, mid)
			}
		}
		fmt.Fprintln(out, right)
	}

	border("┌", "┬", "┐")
	fmt.Fprint(out, "│")
	for _, col := range columns {
		fmt.Fprintf(out, " %-*s │", colWidths[col], col)
	}
	fmt.Fprintln(out)
	border("├", "┼", "┤")

	for _, row := range rows {
		fmt.Fprint(out, "│")
		for _, col := range columns {
			fmt.Fprintf(out, " %-*s │", colWidths[col], formatValue(row[col]))
		}
		fmt.Fprintln(out)
	}
	border("└", "┴", "┘")
}

func formatValue(val interface{}) string {
	if val == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", val)
}
