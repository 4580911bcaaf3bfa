package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var expectCmd = &cobra.Command{
	Use:   "expect <selector> <condition> [expected-text]",
	Short: "Assert that an element reaches a state",
	Long: `Poll until the element satisfies the condition, or fail with a non-zero
exit at the timeout. Conditions: visible, enabled, text.

  axdriver expect 'role:Button|name:Save' enabled
  axdriver expect 'name:Status' text Ready`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runExpect,
}

func init() {
	rootCmd.AddCommand(expectCmd)
	expectCmd.Flags().Int("depth", 0, "Text aggregation depth for the text condition")
}

func runExpect(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	loc := desktop.LocatorString(args[0])
	timeout := cmdTimeout()

	switch args[1] {
	case "visible":
		_, err = loc.ExpectVisible(cmd.Context(), timeout)
	case "enabled":
		_, err = loc.ExpectEnabled(cmd.Context(), timeout)
	case "text":
		if len(args) < 3 {
			return fmt.Errorf("the text condition requires an expected-text argument")
		}
		_, err = loc.ExpectTextEquals(cmd.Context(), args[2], depth, timeout)
	default:
		return fmt.Errorf("unknown condition %q (use visible, enabled or text)", args[1])
	}
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "expect", Selector: args[0], Details: args[1]})
}
