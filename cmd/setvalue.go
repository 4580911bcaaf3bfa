package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var setValueCmd = &cobra.Command{
	Use:   "set-value <selector> <value>",
	Short: "Set an element's value directly",
	Long:  "Write an element's value attribute without simulating keystrokes. Faster than type for large inputs; not every element supports it.",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetValue,
}

func init() {
	rootCmd.AddCommand(setValueCmd)
}

func runSetValue(cmd *cobra.Command, args []string) error {
	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	el, err := desktop.LocatorString(args[0]).Wait(cmd.Context(), cmdTimeout())
	if err != nil {
		return err
	}
	if err := el.SetValue(args[1]); err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "set-value", Selector: args[0]})
}
