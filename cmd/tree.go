package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var treeCmd = &cobra.Command{
	Use:     "tree",
	Aliases: []string{"read"},
	Short:   "Dump the UI element tree of an application window",
	Long:    "Read and print the accessibility tree of a window, identified by application name or PID, optionally filtered by window title.",
	RunE:    runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().String("app", "", "Application name")
	treeCmd.Flags().Int32("pid", 0, "Process ID")
	treeCmd.Flags().String("window", "", "Filter by window title substring")
	treeCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = default)")
}

func runTree(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt32("pid")
	window, _ := cmd.Flags().GetString("window")
	depth, _ := cmd.Flags().GetInt("depth")

	if appName == "" && pid == 0 {
		return fmt.Errorf("one of --app or --pid is required")
	}

	desktop, err := newDesktop()
	if err != nil {
		return err
	}

	if pid == 0 {
		app, err := desktop.Application(appName)
		if err != nil {
			return err
		}
		pid, err = app.ProcessID()
		if err != nil {
			return err
		}
	}

	tree, err := desktop.WindowTree(pid, window, depth)
	if err != nil {
		return err
	}
	return output.Print(output.TreeResult{
		App:    appName,
		PID:    pid,
		Window: window,
		TS:     time.Now().Unix(),
		Tree:   *tree,
	})
}
