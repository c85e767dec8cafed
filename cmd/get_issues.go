package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inovacc/craft-stats/internal/application"
	"github.com/inovacc/craft-stats/internal/auth"
	"github.com/inovacc/craft-stats/internal/core"
	"github.com/inovacc/craft-stats/internal/store"
	"github.com/spf13/cobra"
)

var getIssuesCmd = &cobra.Command{
	Use:   "get-issues",
	Short: "Sync GitHub issues and write the issue reports",
	Long: `Sync the issues and pull requests of every configured project with GitHub,
then write the daily reports and the snapshot.

Known issues older than refresh-interval-days are fetched again. New issues
are discovered by probing numbers above the highest known one until five
consecutive numbers do not exist.

Files written under the data directory:
  issues-github.yaml         Issue store
  <project>-github.csv       Daily report per project
  all-projects-github.csv    Daily report over every project
  snapshot.json              Current state per project

Token Resolution:
  1. --token flag
  2. STARCRAFT_GITHUB_TOKEN environment variable
  3. GITHUB_TOKEN environment variable

Examples:
  craft-stats get-issues
  craft-stats get-issues --config starcraft-config.yaml --data-dir html/data
  craft-stats get-issues --request-timeout 1m --verbose`,
	RunE: runGetIssues,
}

func init() {
	rootCmd.AddCommand(getIssuesCmd)

	getIssuesCmd.Flags().String("token", "", "GitHub token (default: from environment)")
	getIssuesCmd.Flags().Duration("request-timeout", core.DefaultRequestTimeout, "Timeout of a single GitHub API request")
}

func runGetIssues(cmd *cobra.Command, _ []string) error {
	tokenFlag, _ := cmd.Flags().GetString("token")
	timeout, _ := cmd.Flags().GetDuration("request-timeout")

	logger := loggerFromFlags(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, err := dataDir(cmd)
	if err != nil {
		return err
	}

	// Fail before touching the network or the store
	token, err := auth.GitHubToken(tokenFlag)
	if err != nil {
		return err
	}

	logger.Debug("resolved GitHub token", slog.String("source", token.Name))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.Load(application.IssuesDataFile(dir))
	if err != nil {
		return err
	}

	source := core.NewGitHubSource(core.NewGitHubClient(ctx, token.Token), core.GitHubSourceOptions{
		Owner:   cfg.Owner,
		Timeout: timeout,
		Logger:  logger,
	})

	logger.Info("starting issue collection",
		slog.String("owner", cfg.Owner),
		slog.Int("projects", len(cfg.CraftProjects)),
		slog.String("store", s.Path()),
	)

	_, err = core.Collect(ctx, core.CollectOptions{
		Store:           s,
		Source:          source,
		Projects:        cfg.CraftProjects,
		DataDir:         dir,
		RefreshInterval: cfg.RefreshInterval(),
		Now:             time.Now,
		Logger:          logger,
	})

	return err
}
