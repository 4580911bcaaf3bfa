package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var typeCmd = &cobra.Command{
	Use:   "type <selector> <text>",
	Short: "Type text into an element",
	Long:  "Resolve a selector, focus the element and type text into it.",
	Args:  cobra.ExactArgs(2),
	RunE:  runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	if err := desktop.LocatorString(args[0]).TypeText(cmd.Context(), args[1], cmdTimeout()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "type", Selector: args[0]})
}
