package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/storage"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the input and report counts without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import bookmarks from a file or stdin",
	Long: `Import bookmarks in the store's own line format from a file, or from
stdin when no file (or "-") is given.

Lines that fail to decode are counted and skipped; a bad line never
aborts the rest of the import. Imported bookmarks are appended to the
store, duplicates included.

Examples:
  bm import bookmarks.csv
  cat bookmarks.csv | bm import
  bm import bookmarks.csv --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// ImportResult is the response for the import command.
type ImportResult struct {
	Status    string `json:"status"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

func runImport(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()

	var src io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			exitWithError(ExitError, "opening import file: %v", err)
		}
		defer f.Close()
		src = f
	}

	res, err := storage.Import(src)
	if err != nil {
		exitWithError(ExitDataError, "reading import input: %v", err)
	}

	status := "imported"
	if importDryRun {
		status = "dry-run"
	} else if len(res.Bookmarks) > 0 {
		if err := os.MkdirAll(filepath.Dir(cfg.Store), 0755); err != nil {
			exitWithError(ExitConfigError, "creating store directory: %v", err)
		}
		if err := storage.AppendAllFile(cfg.Store, res.Bookmarks); err != nil {
			exitWithError(ExitError, "writing store: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Imported %d bookmark(s), %d failed\n", res.Succeeded, res.Failed)
	} else {
		outputJSON(ImportResult{Status: status, Succeeded: res.Succeeded, Failed: res.Failed})
	}
	return nil
}
