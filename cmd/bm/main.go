// Package main provides the bm CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bmtool/bm/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bm",
	Short: "Personal bookmark manager",
	Long: `bm manages a personal namespace of named shortcuts: a short key
mapping to a target URL plus optional tags, stored as a plain
line-oriented text file.

All commands output JSON by default for easy scripting; pass --human
for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
	cobra.OnInitialize(func() { _ = godotenv.Load() })
}

// mustLoadConfig resolves the bm home directory and loads configuration,
// exiting with ExitConfigError on failure.
func mustLoadConfig() (string, *config.Config) {
	home, err := config.Home()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg, err := config.Load(home)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return home, cfg
}
