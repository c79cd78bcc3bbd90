package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	useMock    bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "storycraft",
		Short: "StoryCraft - a five-stage story generation pipeline",
		Long: `StoryCraft turns a short idea into a published story through five
sequential agents: brief, writer, visual, reviewer, and publisher. Each
stage calls a chat-completion model and feeds the next one.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the offline mock model")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
