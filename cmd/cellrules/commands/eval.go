package commands

import (
	"bufio"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cellrules/internal/printer"
	"cellrules/pkg/rules"
)

func newEvalCmd(a *app) *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "eval [STATE...]",
		Short: "Evaluate neighborhood strings against a rule set",
		Long: `Evaluate prints the next-state outcome for each neighborhood string.

States are taken from the arguments, or one per line from stdin when none are
given. A missing or empty rule file applies no rules and prints nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			au, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			if au == nil {
				printer.Warning(cmd.ErrOrStderr(), "no rules in %s, nothing evaluated\n", src.file)
				return nil
			}

			states := args
			if len(states) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					if line := strings.TrimSpace(sc.Text()); line != "" {
						states = append(states, line)
					}
				}
				if err := sc.Err(); err != nil {
					return printer.Error("Cannot read states", err.Error())
				}
			}

			for _, state := range states {
				o, err := au.Next(state)
				if errors.Is(err, rules.ErrInvalidArgument) {
					return printer.Error("Invalid neighborhood "+state, err.Error(),
						"Each state must be exactly "+strconv.Itoa(au.N())+" characters of '0' and '1'")
				}
				if err != nil {
					return err
				}
				printer.Outcome(cmd.OutOrStdout(), state, o.String())
			}
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}
