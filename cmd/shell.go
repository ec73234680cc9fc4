package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Rana718/petseed/internal/pets"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const shellPrompt = ">> "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive query shell for the pets table",
	Long: `Read queries line by line using the same tokens as 'petseed query'.
Type exit or quit (or send EOF) to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, adapter, err := openProject(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("petseed shell (%s). Type 'exit' to quit.", adapter.Provider())
		return runShell(ctx, pets.ForAdapter(adapter), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell evaluates one query per line. Bad queries are reported and the
// loop keeps going; only database errors end it.
func runShell(ctx context.Context, repo *pets.Repository, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		q, err := pets.ParseQuery(strings.Fields(line))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if err := runQuery(ctx, repo, q, out); err != nil {
			return err
		}
	}
}
