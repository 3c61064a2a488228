// Command curricularace analyzes degree-plan CSVs: it loads each file's
// course graph, scores every course's delay, blocking, complexity, and
// centrality, proposes a term-by-term schedule, and writes the results
// as metrics CSVs and a human-readable report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"curricularace/internal/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "curricularace",
		Short: "Curriculum analytics over degree-plan CSVs",
	}

	root.AddCommand(
		analyzeCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func loadedConfig() *config.Config {
	return config.Load()
}
