package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll <selector>",
	Short: "Scroll within an element",
	Args:  cobra.ExactArgs(1),
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("direction", "down", "Scroll direction: up, down, left, right")
	scrollCmd.Flags().Float64("amount", 0, "Scroll amount in lines (0 = default)")
}

func runScroll(cmd *cobra.Command, args []string) error {
	direction, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetFloat64("amount")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	el, err := desktop.LocatorString(args[0]).Wait(cmd.Context(), cmdTimeout())
	if err != nil {
		return err
	}
	if err := el.Scroll(direction, amount); err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "scroll", Selector: args[0], Details: direction})
}
