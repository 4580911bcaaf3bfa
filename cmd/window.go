package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
	"github.com/axdriver/axdriver/pkg/automation"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Inspect or locate top-level windows",
	Long: `Report the focused window by default. With --title, poll for a window
whose title contains the given text.

  axdriver window
  axdriver window --app
  axdriver window --browser
  axdriver window --title 'Save As'
  axdriver window --activate-browser 'GitHub'`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().Bool("app", false, "Report the focused application instead")
	windowCmd.Flags().Bool("browser", false, "Report the focused browser window (fails if the foreground app is not a browser)")
	windowCmd.Flags().String("title", "", "Wait for a window with this title substring")
	windowCmd.Flags().String("activate-browser", "", "Raise the browser window with this title substring")
}

func runWindow(cmd *cobra.Command, args []string) error {
	app, _ := cmd.Flags().GetBool("app")
	browser, _ := cmd.Flags().GetBool("browser")
	title, _ := cmd.Flags().GetString("title")
	activateBrowser, _ := cmd.Flags().GetString("activate-browser")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}

	if activateBrowser != "" {
		if err := desktop.ActivateBrowserWindowByTitle(activateBrowser); err != nil {
			return err
		}
		return output.Print(output.ActionResult{Action: "activate-browser", Details: activateBrowser})
	}

	var el *automation.UIElement
	switch {
	case title != "":
		el, err = desktop.FindWindowByCriteria(cmd.Context(), title, cmdTimeout())
	case app:
		el, err = desktop.CurrentApplication(cmd.Context())
	case browser:
		el, err = desktop.CurrentBrowserWindow(cmd.Context())
	default:
		el, err = desktop.CurrentWindow(cmd.Context())
	}
	if err != nil {
		return err
	}
	return output.Print(output.Summarize(el))
}
