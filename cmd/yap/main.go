// Command yap is a small task tracker for the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "yap",
	Short: "Yet another task tracker",
	Long: `yap keeps a list of tasks in a local SQLite database.

Run without a command to see what needs attention next. Dates accept
today, tomorrow, now, weekday names, ISO 8601 dates, times and
datetimes, and ISO 8601 durations relative to now (P3D, -PT2H). An
empty string clears a date. Arguments starting with '-' must follow
'--', e.g. 'yap done -- -3'.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          run(runNext),
}

func init() {
	rootCmd.PersistentFlags().String("home", "", "directory holding the database and context file (default $HOME)")
	rootCmd.PersistentFlags().Bool("debug", false, "log every SQL statement")
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.yap.toml)")
	rootCmd.PersistentFlags().String("color", "", "colour output: auto, always or never")

	rootCmd.AddGroup(
		&cobra.Group{ID: "tasks", Title: "Working with tasks:"},
		&cobra.Group{ID: "views", Title: "Viewing tasks:"},
		&cobra.Group{ID: "data", Title: "Data and settings:"},
	)
	rootCmd.SetHelpCommandGroupID("data")
	rootCmd.SetCompletionCommandGroupID("data")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
