package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var clickCmd = &cobra.Command{
	Use:   "click <selector>",
	Short: "Click an element",
	Long:  "Resolve a selector and click the element. Falls back from accessibility actions to mouse simulation when needed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Bool("right", false, "Right-click (not supported on macOS)")
	clickCmd.Flags().Bool("hover", false, "Hover instead of clicking (not supported on Windows)")
}

func runClick(cmd *cobra.Command, args []string) error {
	double, _ := cmd.Flags().GetBool("double")
	right, _ := cmd.Flags().GetBool("right")
	hover, _ := cmd.Flags().GetBool("hover")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	loc := desktop.LocatorString(args[0])
	el, err := loc.Wait(cmd.Context(), cmdTimeout())
	if err != nil {
		return err
	}

	result := output.ActionResult{Action: "click", Selector: args[0]}
	switch {
	case hover:
		result.Action = "hover"
		if err := el.Hover(); err != nil {
			return err
		}
	case right:
		result.Action = "right-click"
		if err := el.RightClick(); err != nil {
			return err
		}
	case double:
		result.Action = "double-click"
		res, err := el.DoubleClick()
		if err != nil {
			return err
		}
		result.Method = res.Method
		result.Details = res.Details
	default:
		res, err := el.Click()
		if err != nil {
			return err
		}
		result.Method = res.Method
		result.Details = res.Details
	}
	return output.Print(result)
}
