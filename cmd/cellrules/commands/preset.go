package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cellrules/internal/core"
	"cellrules/internal/library"
	"cellrules/internal/printer"
)

func newPresetCmd(a *app) *cobra.Command {
	var (
		overrides []string
		out       string
		saveAs    string
	)
	cmd := &cobra.Command{
		Use:   "preset NAME",
		Short: "Build a rule set from a named preset",
		Long: `Preset builds a rule set from a built-in family and prints its rule text,
writes it to a file with --out, or stores it in the library with --save.

Presets:
  elementary   1D Wolfram code (--set rule=110)
  life         Life-like 3x3 rules (--set rule=B3/S23)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, ok := core.Presets()[args[0]]
			if !ok {
				return printer.Error(fmt.Sprintf("Unknown preset %q", args[0]), "",
					"Available presets: "+strings.Join(core.PresetNames(), ", "))
			}
			params := map[string]string{}
			for _, kv := range overrides {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return printer.Error(fmt.Sprintf("Invalid --set %q", kv), "Overrides use key=value form.")
				}
				params[parts[0]] = parts[1]
			}
			au, err := factory(params)
			if err != nil {
				return printer.Error("Cannot build preset "+args[0], err.Error())
			}

			if out == "" && saveAs == "" {
				printer.Info(cmd.OutOrStdout(), "%s\n", au)
				return nil
			}
			if out != "" {
				if err := library.ExportFile(out, au); err != nil {
					return printer.Error("Cannot write rule file", err.Error())
				}
				printer.Success(cmd.OutOrStdout(), "Wrote %s to %s\n", args[0], out)
			}
			if saveAs != "" {
				lib, err := a.openLibrary(cmd.Context())
				if err != nil {
					return err
				}
				defer lib.Close()
				id, err := lib.Put(cmd.Context(), saveAs, au)
				if err != nil {
					return printer.Error("Cannot save rules", err.Error())
				}
				printer.Success(cmd.OutOrStdout(), "Saved %q as id %d\n", saveAs, id)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "preset parameter in key=value form (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the rule text to a file")
	cmd.Flags().StringVar(&saveAs, "save", "", "store the rule set in the library under this name")
	return cmd
}
