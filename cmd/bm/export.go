package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/storage"
)

var (
	exportText string
	exportTags []string
)

func init() {
	exportCmd.Flags().StringVar(&exportText, "text", "", "Only export bookmarks matching this text")
	exportCmd.Flags().StringArrayVarP(&exportTags, "tag", "t", nil, "Only export bookmarks matching a tag substring (can be repeated)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export bookmarks to a file or stdout",
	Long: `Export bookmarks in the store's line format to a file, or to stdout
when no file (or "-") is given. The text and tag filters select which
bookmarks are exported, with the same matching rules as search.

Examples:
  bm export backup.csv
  bm export --tag dev > dev.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()

	bookmarks, err := storage.SearchFile(cfg.Store, storage.Query{Text: exportText, Tags: exportTags})
	if err != nil {
		exitWithError(ExitError, "searching store: %v", err)
	}

	var dst io.Writer = os.Stdout
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			exitWithError(ExitError, "creating export file: %v", err)
		}
		defer f.Close()
		dst = f
	}

	if err := storage.Export(dst, bookmarks); err != nil {
		exitWithError(ExitError, "writing export: %v", err)
	}
	return nil
}
