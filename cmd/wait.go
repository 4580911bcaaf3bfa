package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var waitCmd = &cobra.Command{
	Use:   "wait <selector>",
	Short: "Wait for an element to exist or satisfy a condition",
	Long: `Poll until the selector resolves and the condition holds, or the timeout
expires.

  axdriver wait 'name:Done'
  axdriver wait 'role:Button|name:Submit' --condition enabled
  axdriver wait 'name:Status' --condition text --expected Ready`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("condition", "exists", "Condition: exists, visible, enabled, text")
	waitCmd.Flags().String("expected", "", "Expected text for --condition text")
	waitCmd.Flags().Int("depth", 0, "Text aggregation depth for --condition text")
}

func runWait(cmd *cobra.Command, args []string) error {
	condition, _ := cmd.Flags().GetString("condition")
	expected, _ := cmd.Flags().GetString("expected")
	depth, _ := cmd.Flags().GetInt("depth")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	loc := desktop.LocatorString(args[0])
	timeout := cmdTimeout()

	switch condition {
	case "exists":
		_, err = loc.Wait(cmd.Context(), timeout)
	case "visible":
		_, err = loc.ExpectVisible(cmd.Context(), timeout)
	case "enabled":
		_, err = loc.ExpectEnabled(cmd.Context(), timeout)
	case "text":
		_, err = loc.ExpectTextEquals(cmd.Context(), expected, depth, timeout)
	default:
		return fmt.Errorf("unknown condition %q (use exists, visible, enabled or text)", condition)
	}
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{Action: "wait", Selector: args[0], Details: condition})
}
