package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cellrules/internal/printer"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rule sets in the library, most recently used first",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			records, err := lib.List(cmd.Context())
			if err != nil {
				return printer.Error("Cannot list rule sets", err.Error())
			}
			if len(records) == 0 {
				printer.Info(cmd.OutOrStdout(), "No rule sets stored.\n")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %-24s %-4s %s\n", "ID", "NAME", "DIM", "LAST USED")
			for _, r := range records {
				dim := "1D"
				if r.Is2D {
					dim = "2D"
				}
				fmt.Fprintf(out, "%-6d %-24s %-4s %s\n", r.ID, r.Name, dim, r.LastUse.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}
