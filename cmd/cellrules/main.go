package main

import (
	"os"

	"cellrules/cmd/cellrules/commands"
	_ "cellrules/internal/presets/elementary"
	_ "cellrules/internal/presets/lifelike"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
