package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var pressCmd = &cobra.Command{
	Use:   "press <selector> <combo>",
	Short: "Press a key combination on an element",
	Long: `Resolve a selector, focus the element and press a key combination.

Combos join modifiers and one key with '+':

  axdriver press 'role:TextField' enter
  axdriver press '#el_1a2b' ctrl+shift+t
  axdriver press 'name:Editor' cmd+s`,
	Args: cobra.ExactArgs(2),
	RunE: runPress,
}

func init() {
	rootCmd.AddCommand(pressCmd)
}

func runPress(cmd *cobra.Command, args []string) error {
	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	if err := desktop.LocatorString(args[0]).PressKey(cmd.Context(), args[1], cmdTimeout()); err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "press", Selector: args[0], Details: args[1]})
}
