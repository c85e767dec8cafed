package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/craft-stats/internal/launchpad"
	"github.com/spf13/cobra"
)

var getLaunchpadCmd = &cobra.Command{
	Use:   "get-launchpad [project...]",
	Short: "Record Launchpad bug status counts",
	Long: `Count the bug tasks of each Launchpad project per status and append one
row to <project>-launchpad.csv under the data directory.

Without arguments the launchpad-projects list of the configuration is used.

Examples:
  craft-stats get-launchpad snapcraft
  craft-stats get-launchpad`,
	RunE: runGetLaunchpad,
}

func init() {
	rootCmd.AddCommand(getLaunchpadCmd)

	getLaunchpadCmd.Flags().String("base-url", launchpad.DefaultBaseURL, "Launchpad web service root")
	getLaunchpadCmd.Flags().Duration("request-timeout", 0, "Timeout of a single Launchpad request (default: 30s)")
}

func runGetLaunchpad(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeout, _ := cmd.Flags().GetDuration("request-timeout")

	logger := loggerFromFlags(cmd)

	projects := args
	if len(projects) == 0 {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		projects = cfg.LaunchpadProjects
	}

	if len(projects) == 0 {
		return errors.New("no Launchpad project given and launchpad-projects is empty")
	}

	dir, err := dataDir(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := launchpad.NewClient(launchpad.ClientOptions{BaseURL: baseURL, Timeout: timeout})

	for _, project := range projects {
		if _, err := launchpad.Record(ctx, launchpad.RecordOptions{
			Client:  client,
			Project: project,
			DataDir: dir,
			Logger:  logger,
		}); err != nil {
			return err
		}
	}

	return nil
}
