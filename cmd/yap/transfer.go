package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/logging"
	"github.com/cenkalti/yap/internal/task"
	"github.com/cenkalti/yap/internal/transfer"
	"github.com/cenkalti/yap/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:     "export [file]",
	GroupID: "data",
	Short:   "Export every task as JSON or YAML",
	Long: `Export every task, in any state, with all of its fields. Without a
file the document goes to standard output. The format follows the file
extension unless --format is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		format, err := formatFlag(cmd, args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			_, err := transfer.Export(cmd.Context(), db, cmd.OutOrStdout(), format)
			return err
		}
		n, err := transfer.ExportFile(cmd.Context(), db, args[0], format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d task(s) to %s\n", ui.RenderPass("✓"), n, args[0])
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:     "import [file]",
	GroupID: "data",
	Short:   "Import tasks from a JSON or YAML export",
	Long: `Import tasks from a document written by export, keeping their ids.
Without a file the document is read from standard input. Records that
cannot be stored, such as ones whose id is taken, are reported and
skipped; the rest are imported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		format, err := formatFlag(cmd, args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}

		opts := transfer.ImportOptions{
			Format: format,
			Logger: a.sink.Logger("import"),
		}
		if !a.sink.Enabled() {
			opts.Logger = logging.Stderr("import")
		}

		var res *transfer.ImportResult
		if len(args) == 0 {
			res, err = transfer.Import(cmd.Context(), db, cmd.InOrStdin(), opts)
		} else {
			res, err = transfer.ImportFile(cmd.Context(), db, args[0], opts)
		}
		if res != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Imported %d of %d task(s)\n", ui.RenderPass("✓"), res.Imported, res.Total)
		}
		if errors.Is(err, task.ErrImportCompletedWithErrors) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d record(s) failed\n", ui.RenderWarn("⚠"), res.Failed)
		}
		return err
	}),
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "json or yaml (default json)")
	importCmd.Flags().StringP("format", "f", "", "json or yaml (default json)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

// formatFlag resolves --format, falling back to the file extension.
func formatFlag(cmd *cobra.Command, args []string) (transfer.Format, error) {
	if s, ok := changed(cmd, "format"); ok {
		return transfer.ParseFormat(s)
	}
	if len(args) == 1 {
		return transfer.FormatFor(args[0], transfer.FormatJSON), nil
	}
	return transfer.FormatJSON, nil
}
