package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/inovacc/craft-stats/internal/application"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Collect issue and bug statistics for the craft projects",
	Long: `craft-stats collects issue, pull request and bug tracker statistics for a
family of related projects and writes the YAML, CSV and JSON files read by
the static dashboard.

Projects are listed in the configuration file (starcraft-config.yaml by
default). Output is written under the data directory (html/data by default).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if code := runRoot(context.Background(), os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// runRoot executes the root command and reports a failure once on errOut.
func runRoot(ctx context.Context, errOut io.Writer) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	return 0
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", application.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().String("data-dir", application.DefaultDataDir, "Directory for data and report files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Var(newLogFormatValue(), "log-format", "Log format: auto, text, json")
}
