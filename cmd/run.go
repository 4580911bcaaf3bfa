package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var runCmd = &cobra.Command{
	Use:   "run [command]",
	Short: "Run a shell command and print its output",
	Long: `Run a command through the platform shell (cmd /C on Windows, /bin/sh -c
elsewhere). Pass the command positionally to use it on any platform, or give
per-platform variants with --windows / --unix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("windows", "", "Command for Windows")
	runCmd.Flags().String("unix", "", "Command for macOS/Linux")
}

func runRun(cmd *cobra.Command, args []string) error {
	windowsCmd, _ := cmd.Flags().GetString("windows")
	unixCmd, _ := cmd.Flags().GetString("unix")
	if len(args) == 1 {
		if windowsCmd == "" {
			windowsCmd = args[0]
		}
		if unixCmd == "" {
			unixCmd = args[0]
		}
	}
	if windowsCmd == "" && unixCmd == "" {
		return fmt.Errorf("a command is required")
	}

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	out, err := desktop.RunCommand(cmd.Context(), windowsCmd, unixCmd)
	if err != nil {
		return err
	}
	return output.Print(out)
}
