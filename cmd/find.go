package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find <selector>",
	Short: "Find all elements matching a selector",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().Int("depth", 0, "Max search depth (0 = default)")
}

func runFind(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}
	els, err := desktop.LocatorString(args[0]).All(cmd.Context(), cmdTimeout(), depth)
	if err != nil {
		return err
	}

	result := output.FindResult{Selector: args[0], Count: len(els)}
	for _, el := range els {
		result.Elements = append(result.Elements, output.Summarize(el))
	}
	return output.Print(result)
}
