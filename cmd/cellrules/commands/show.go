package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cellrules/internal/core"
	"cellrules/internal/printer"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		src    source
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Describe a rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			au, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			if au == nil {
				printer.Warning(cmd.ErrOrStderr(), "no rules in %s\n", src.file)
				return nil
			}
			snap := core.Describe(au)
			out := cmd.OutOrStdout()

			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			}

			fmt.Fprintf(out, "%s\n", au)
			for _, g := range snap.Groups {
				fmt.Fprintf(out, "\n%s", g.Name)
				if g.Summary != "" {
					fmt.Fprintf(out, " (%s)", g.Summary)
				}
				fmt.Fprintln(out)
				for _, p := range g.Params {
					fmt.Fprintf(out, "  %-24s %s\n", p.Label, p.Value)
				}
			}
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the description as YAML")
	return cmd
}
