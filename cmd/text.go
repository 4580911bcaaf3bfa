package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var textCmd = &cobra.Command{
	Use:   "text <selector>",
	Short: "Read the text content of an element's subtree",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().Int("depth", 0, "Max depth to aggregate (0 = default)")
}

func runText(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	text, err := desktop.LocatorString(args[0]).Text(cmd.Context(), depth, cmdTimeout())
	if err != nil {
		return err
	}
	return output.Print(output.TextResult{Selector: args[0], Text: text})
}
