package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List running applications",
	RunE:  runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
}

func runApps(cmd *cobra.Command, args []string) error {
	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	apps, err := desktop.Applications()
	if err != nil {
		return err
	}
	result := output.AppsResult{Count: len(apps)}
	for _, app := range apps {
		result.Applications = append(result.Applications, output.Summarize(app))
	}
	return output.Print(result)
}
