package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Rana718/petseed/internal/pets"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [tokens...]",
	Short: "Query the pets table",
	Long: `
Run one query against the pets table. Tokens combine freely:

  all                  every pet (the default)
  species=<value>      filter by species
  name=<value>         filter by name
  order_by=<column>    sort by id, name or species; prefix with - for descending
  limit=<n>            return at most n pets
  offset=<n>           skip the first n matching pets
  count                print the number of matching pets instead

Examples:
  petseed query
  petseed query species=Cat
  petseed query order_by=name limit=3
  petseed query limit=3 offset=3
  petseed query species=Dog count`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := pets.ParseQuery(args)
		if err != nil {
			return err
		}

		ctx := context.Background()
		_, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		return runQuery(ctx, pets.ForAdapter(adapter), q, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(ctx context.Context, repo *pets.Repository, q pets.Query, out io.Writer) error {
	if q.CountOnly {
		n, err := repo.Count(ctx, q)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, n)
		return nil
	}

	list, err := repo.Find(ctx, q)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, pets.FormatList(list))
	return nil
}
