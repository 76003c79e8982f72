package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/config"
	"github.com/bmtool/bm/internal/opener"
	"github.com/bmtool/bm/internal/tui"
)

var browseDebug bool

func init() {
	browseCmd.Flags().BoolVar(&browseDebug, "debug", false, "Log session diagnostics to browse.log in the bm home")
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse bookmarks in an interactive table",
	Long: `Browse bookmarks in an interactive terminal table.

Keys:
  up/down/left/right (or hjkl)   move the cursor
  g / G                          jump to the first / last row
  space                          select or deselect the current row
  enter                          open the selected rows (or the current one)
  y                              copy the current target to the clipboard
  r                              reload from the store file
  q                              quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	home, cfg := mustLoadConfig()

	// The table owns the terminal, so diagnostics go to a file.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if browseDebug {
		if err := os.MkdirAll(filepath.Dir(config.LogPath(home)), 0755); err != nil {
			exitWithError(ExitConfigError, "creating bm home: %v", err)
		}
		f, err := os.OpenFile(config.LogPath(home), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			exitWithError(ExitConfigError, "opening session log: %v", err)
		}
		defer f.Close()
		log = slog.New(tint.NewHandler(f, &tint.Options{NoColor: true}))
	}

	op := opener.New(cfg.Browser, cfg.OpenRate)
	model := tui.New(cfg.Store, op, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		exitWithError(ExitError, "running browser: %v", err)
	}
	return nil
}
