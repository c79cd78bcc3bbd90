package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quickCmd = &cobra.Command{
	Use:   "quick <idea>",
	Short: "Run only the brief and writer stages for a fast draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		brief, story := a.orchestrator.QuickRun(cmd.Context(), args[0])
		fmt.Println("== brief")
		printResult(brief)
		fmt.Println("== draft")
		printResult(story)

		if brief.IsError() || story.IsError() {
			return fmt.Errorf("quick draft failed")
		}
		return nil
	},
}
