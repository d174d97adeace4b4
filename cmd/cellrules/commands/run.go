package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cellrules/internal/printer"
	"cellrules/internal/render"
	"cellrules/internal/sims/world"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		src    source
		width  int
		height int
		steps  int
		seed   int64
		center bool
		pngOut string
		scale  int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a random or single-seed grid under a rule set",
		Long: `Run steps a toroidal grid under the rule set and prints each generation.

A 1D rule set evolves one row and prints it once per generation, top to
bottom. A 2D rule set prints the whole grid after every generation.
With --png the same frames are written as an image: the row history for 1D,
the final grid for 2D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			au, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			if au == nil {
				printer.Warning(cmd.ErrOrStderr(), "no rules in %s, nothing to run\n", src.file)
				return nil
			}
			h := height
			if au.Dim() == 1 {
				h = 1
			}
			w, err := world.New(au, width, h)
			if err != nil {
				return printer.Error("Cannot run rule set", err.Error())
			}
			if center {
				w.Grid().Set(width/2, h/2, true)
			} else {
				w.Reset(seed)
			}

			out := cmd.OutOrStdout()
			var history []uint8
			frame := func() {
				g := w.Grid()
				if au.Dim() == 1 {
					fmt.Fprintln(out, render.Row(g, 0))
					history = append(history, g.Cells()...)
					return
				}
				fmt.Fprintf(out, "gen %d\n%s", w.Generation(), render.Text(g))
			}

			frame()
			unresolved := 0
			for i := 0; i < steps; i++ {
				if err := w.Step(); err != nil {
					return printer.Error("Step failed", err.Error())
				}
				unresolved += w.Unresolved()
				if au.Dim() == 2 {
					fmt.Fprintln(out)
				}
				frame()
			}
			if unresolved > 0 {
				printer.Warning(cmd.ErrOrStderr(), "%d cell updates had a custom outcome and kept their state\n", unresolved)
			}

			if pngOut == "" {
				return nil
			}
			f, err := os.Create(pngOut)
			if err != nil {
				return printer.Error("Cannot write image", err.Error())
			}
			cells, rows := w.Grid().Cells(), h
			if au.Dim() == 1 {
				cells, rows = history, steps+1
			}
			if err := render.WritePNG(f, cells, width, rows, scale); err != nil {
				_ = f.Close()
				return printer.Error("Cannot write image", err.Error())
			}
			if err := f.Close(); err != nil {
				return printer.Error("Cannot write image", err.Error())
			}
			printer.Success(cmd.ErrOrStderr(), "Wrote %s\n", pngOut)
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().IntVar(&width, "width", 32, "grid width")
	cmd.Flags().IntVar(&height, "height", 16, "grid height (2D only)")
	cmd.Flags().IntVar(&steps, "steps", 16, "generations to run")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the random start")
	cmd.Flags().BoolVar(&center, "center", false, "start from a single live center cell")
	cmd.Flags().StringVar(&pngOut, "png", "", "also write the frames to a PNG file")
	cmd.Flags().IntVar(&scale, "scale", 4, "PNG pixels per cell")
	return cmd
}
