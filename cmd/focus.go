package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus <selector>",
	Short: "Give an element keyboard focus",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
}

func runFocus(cmd *cobra.Command, args []string) error {
	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	el, err := desktop.LocatorString(args[0]).Wait(cmd.Context(), cmdTimeout())
	if err != nil {
		return err
	}
	if err := el.Focus(); err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "focus", Selector: args[0]})
}
