package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cellrules/internal/config"
	"cellrules/internal/library"
	"cellrules/internal/logging"
	"cellrules/internal/printer"
	"cellrules/internal/store"
	"cellrules/pkg/rules"
)

var versionString = "dev"

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	configPath string
	verbosity  int
	cfg        config.Config
}

// NewRootCmd returns the cellrules command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cellrules",
		Short: "Evaluate and manage cellular automaton rule sets",
		Long: `cellrules evaluates the next state of a cell from its neighborhood string
using exact-pattern rules and neighbor-count ranges, and keeps rule sets in
a SQLite or Redis library or in one-line rule files.`,
		Version:       versionString,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return printer.Error("Invalid configuration", err.Error(),
					"Check the file passed with --config", "Check CELLRULES_* environment variables")
			}
			if a.verbosity > 0 {
				cfg.Log.Verbosity = a.verbosity
			}
			a.cfg = cfg
			logging.Setup(cfg.Log.Verbosity, cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	root.AddCommand(
		newEvalCmd(a),
		newSaveCmd(a),
		newExportCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newPresetCmd(a),
		newRunCmd(a),
	)
	return root
}

func (a *app) openLibrary(ctx context.Context) (*library.Library, error) {
	lib, err := library.Open(ctx, a.cfg.Store)
	if err != nil {
		return nil, printer.Error("Cannot open rule library", err.Error(),
			"Check store settings in the config file", "Set CELLRULES_STORE__DRIVER to sqlite or redis")
	}
	return lib, nil
}

// source names where a command reads its automaton from.
type source struct {
	file string
	id   int64
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read rules from a one-line rule file")
	cmd.Flags().Int64Var(&s.id, "id", 0, "read rules from the library by id")
	cmd.MarkFlagsMutuallyExclusive("file", "id")
	cmd.MarkFlagsOneRequired("file", "id")
}

// load returns nil, nil when a rule file is missing or empty.
func (s *source) load(ctx context.Context, a *app) (*rules.Automaton, error) {
	if s.file != "" {
		au, err := library.ImportFile(s.file)
		if err != nil {
			return nil, loadError(err)
		}
		return au, nil
	}
	lib, err := a.openLibrary(ctx)
	if err != nil {
		return nil, err
	}
	defer lib.Close()
	au, err := lib.Get(ctx, s.id)
	if err != nil {
		return nil, loadError(err)
	}
	return au, nil
}

func loadError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return printer.Error("Rule set not found", err.Error(), "Run 'cellrules list' to see stored ids")
	case errors.Is(err, rules.ErrFormat):
		return printer.Error("Malformed rule text", err.Error())
	}
	return printer.Error("Cannot load rules", err.Error())
}
