package commands

import (
	"github.com/spf13/cobra"

	"cellrules/internal/library"
	"cellrules/internal/printer"
)

func newSaveCmd(a *app) *cobra.Command {
	var (
		file string
		name string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Store a rule file in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			au, err := library.RequireFile(file)
			if err != nil {
				return loadError(err)
			}
			lib, err := a.openLibrary(cmd.Context())
			if err != nil {
				return err
			}
			defer lib.Close()

			id, err := lib.Put(cmd.Context(), name, au)
			if err != nil {
				return printer.Error("Cannot save rules", err.Error())
			}
			printer.Success(cmd.OutOrStdout(), "Saved %q as id %d\n", name, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "one-line rule file to store")
	cmd.Flags().StringVar(&name, "name", "", "name recorded with the rule set")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		id  int64
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored rule set to a one-line rule file",
		RunE: func(cmd *cobra.Command, args []string) error {
			src := source{id: id}
			au, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			if err := library.ExportFile(out, au); err != nil {
				return printer.Error("Cannot write rule file", err.Error())
			}
			printer.Success(cmd.OutOrStdout(), "Exported id %d to %s\n", id, out)
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "library id to export")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination rule file")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
