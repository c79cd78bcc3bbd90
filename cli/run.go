package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storycraft/agent"
	"storycraft/pipeline"
	"storycraft/render"
)

var runHTML bool

var runCmd = &cobra.Command{
	Use:   "run <idea>",
	Short: "Run the full five-stage pipeline for an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		var run *pipeline.PipelineRun
		if verbose {
			for snap := range a.orchestrator.Stream(cmd.Context(), args[0]) {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", snap.Stage, snap.Status)
				if snap.Terminal {
					r := snap.Run
					run = &r
					if snap.Cached {
						fmt.Fprintln(os.Stderr, "served from cache")
					}
				}
			}
		} else {
			run = a.orchestrator.Run(cmd.Context(), args[0])
		}
		if run == nil {
			return fmt.Errorf("run was cancelled")
		}

		printRun(run)

		if runHTML {
			published, ok := run.Results[agent.StagePublisher]
			if ok && published.Kind == agent.KindText {
				page, err := render.Document(published.Text)
				if err != nil {
					return err
				}
				fmt.Println(page)
			}
		}

		if stage, failed := run.FailedAt(); failed {
			return fmt.Errorf("pipeline halted at %s stage", stage)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runHTML, "html", false, "also print the published story as HTML")
}

func printRun(run *pipeline.PipelineRun) {
	for _, stage := range agent.Stages() {
		res, ok := run.Results[stage]
		if !ok {
			continue
		}
		fmt.Printf("== %s [%s]\n", stage, run.Statuses[stage])
		printResult(res)
	}
	if run.Metrics != nil {
		m := run.Metrics
		fmt.Printf("== metrics\nwords=%d chars=%d read=%d min quality=%s\n",
			m.Words, m.Chars, m.ReadMinutes, m.QualityLabel())
	}
}

func printResult(res agent.StageResult) {
	switch res.Kind {
	case agent.KindText:
		fmt.Println(res.Text)
	default:
		data, err := json.MarshalIndent(res.Payload(), "", "  ")
		if err != nil {
			fmt.Println(res.Summary())
			return
		}
		fmt.Println(string(data))
	}
}
