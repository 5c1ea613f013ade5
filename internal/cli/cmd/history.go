package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent theme transitions from the journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of transitions to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()

	journal, err := app.Journal()
	if err != nil {
		return err
	}
	if journal == nil {
		fmt.Println(app.Theme.Subtle.Render("journaling is disabled (history.enabled = false)"))
		return nil
	}

	transitions, err := journal.Recent(app.Ctx(), historyLimit)
	if err != nil {
		return err
	}

	fmt.Print(app.Theme.RenderTransitions(transitions))
	return nil
}
