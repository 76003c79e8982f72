package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  bm config                       # Show all config
  bm config store                 # Get a specific value
  bm config store ~/marks.csv     # Set the store file path
  bm config browser firefox       # Set the browser command

Keys:
  store      Path to the bookmark file
  browser    Command used to open targets (empty uses the platform opener)
  open-rate  Maximum opens per second during batch open`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	Store    string  `json:"store"`
	Browser  string  `json:"browser,omitempty"`
	OpenRate float64 `json:"open_rate"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	home, cfg := mustLoadConfig()

	// Show all.
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("store:     %s\nbrowser:   %s\nopen-rate: %g\n", cfg.Store, cfg.Browser, cfg.OpenRate)
		} else {
			outputJSON(ConfigResponse{Store: cfg.Store, Browser: cfg.Browser, OpenRate: cfg.OpenRate})
		}
		return nil
	}

	key := args[0]

	// Get one value.
	if len(args) == 1 {
		var value string
		switch key {
		case "store":
			value = cfg.Store
		case "browser":
			value = cfg.Browser
		case "open-rate":
			value = strconv.FormatFloat(cfg.OpenRate, 'g', -1, 64)
		default:
			exitWithError(ExitError, "unknown config key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(UpdateResponse{Status: "ok", Key: key, Value: value})
		}
		return nil
	}

	// Set.
	value := args[1]
	switch key {
	case "store":
		cfg.Store = value
	case "browser":
		cfg.Browser = value
	case "open-rate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			exitWithError(ExitError, "open-rate must be a positive number, got %q", value)
		}
		cfg.OpenRate = rate
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := cfg.Save(home); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
