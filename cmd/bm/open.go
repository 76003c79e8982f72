package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/clipboard"
	"github.com/bmtool/bm/internal/opener"
	"github.com/bmtool/bm/internal/storage"
)

var openCopy bool

func init() {
	openCmd.Flags().BoolVar(&openCopy, "copy", false, "Copy the target to the clipboard instead of opening it")
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <key>",
	Short: "Open a bookmark's target in the browser",
	Long: `Open a bookmark's target in the configured browser (or the platform
default). With duplicate keys the first stored match is opened.

Examples:
  bm open gh
  bm open gh --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// OpenResult is the response for the open command.
type OpenResult struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Target string `json:"target"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	key := args[0]

	b, err := storage.LookupFile(cfg.Store, key)
	if err != nil {
		if storage.IsNotFound(err) {
			exitWithError(ExitNotFound, "bookmark %s: not found", key)
		}
		exitWithError(ExitError, "bookmark %s: %v", key, err)
	}

	if openCopy {
		if err := clipboard.Copy(b.Target); err != nil {
			exitWithError(ExitError, "copying target: %v", err)
		}
		if humanOutput {
			fmt.Fprintln(os.Stderr, "Copied to clipboard")
			fmt.Println(b.Target)
		} else {
			outputJSON(OpenResult{Status: "copied", Key: key, Target: b.Target})
		}
		return nil
	}

	op := opener.New(cfg.Browser, cfg.OpenRate)
	if err := op.Open(b.Target); err != nil {
		exitWithError(ExitError, "opening target: %v", err)
	}

	if humanOutput {
		fmt.Printf("Opening: %s\n", b.Target)
	} else {
		outputJSON(OpenResult{Status: "opened", Key: key, Target: b.Target})
	}
	return nil
}
