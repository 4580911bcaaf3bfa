package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open an application, URL or file",
	Long: `Open a target with the platform launcher:

  axdriver open --app Safari
  axdriver open --url https://example.com --browser Firefox
  axdriver open --file ~/report.pdf`,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().String("app", "", "Application name to launch")
	openCmd.Flags().String("url", "", "URL to open")
	openCmd.Flags().String("browser", "", "Browser to open the URL with")
	openCmd.Flags().String("file", "", "File to open with its default application")
}

func runOpen(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	url, _ := cmd.Flags().GetString("url")
	browser, _ := cmd.Flags().GetString("browser")
	file, _ := cmd.Flags().GetString("file")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}

	switch {
	case appName != "":
		app, err := desktop.OpenApplication(appName)
		if err != nil {
			return err
		}
		pid, _ := app.ProcessID()
		return output.Print(output.ActionResult{
			Action:  "open",
			Details: fmt.Sprintf("%s (pid %d)", appName, pid),
		})
	case url != "":
		if err := desktop.OpenURL(url, browser); err != nil {
			return err
		}
		return output.Print(output.ActionResult{Action: "open", Details: url})
	case file != "":
		if err := desktop.OpenFile(file); err != nil {
			return err
		}
		return output.Print(output.ActionResult{Action: "open", Details: file})
	default:
		return fmt.Errorf("one of --app, --url or --file is required")
	}
}
