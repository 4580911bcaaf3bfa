// Package cmd implements the axdriver command line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
	"github.com/axdriver/axdriver/internal/version"
	"github.com/axdriver/axdriver/pkg/automation"
)

var rootCmd = &cobra.Command{
	Use:   "axdriver",
	Short: "Drive desktop applications through their accessibility trees",
	Long: `axdriver locates and operates UI elements via the platform accessibility
APIs (AXUIElement on macOS, UI Automation on Windows). Elements are addressed
with selectors:

  role:Button|name:Submit   role, optionally filtered by name
  #el_1a2b                  stable element ID
  name:Save                 name/title substring
  text:Hello                text content substring
  .NSButton                 class name (Windows only)
  free text                 shorthand for text:

Chain selectors with ' >> ' to scope each step to the previous match:

  axdriver click 'role:Window|name:Login >> role:Button|name:Submit'`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: trace, debug, info, warn, error, off")
	rootCmd.PersistentFlags().Duration("timeout", automation.DefaultLocatorTimeout, "Element resolution timeout")
	rootCmd.PersistentFlags().Bool("background-apps", false, "Include background applications")
	rootCmd.PersistentFlags().Bool("activate", false, "Activate target applications before interacting")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty

		levelStr, _ := rootCmd.PersistentFlags().GetString("log-level")
		if levelStr == "off" {
			zerolog.SetGlobalLevel(zerolog.Disabled)
			return nil
		}
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return fmt.Errorf("unsupported log level: %s", levelStr)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	}
}

// newDesktop builds the desktop handle from the persistent flags.
func newDesktop() (*automation.Desktop, error) {
	background, _ := rootCmd.PersistentFlags().GetBool("background-apps")
	activate, _ := rootCmd.PersistentFlags().GetBool("activate")
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return automation.NewDesktop(background, activate, automation.WithLogger(log))
}

// cmdTimeout returns the persistent --timeout value.
func cmdTimeout() time.Duration {
	timeout, _ := rootCmd.PersistentFlags().GetDuration("timeout")
	return timeout
}
