package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/inovacc/craft-stats/internal/application"
	"github.com/inovacc/craft-stats/internal/store"
)

// CollectOptions configures a collection run
type CollectOptions struct {
	Store    *store.Store
	Source   IssueSource
	Projects []string // processed in order
	DataDir  string

	// RefreshInterval is passed to SyncProject
	RefreshInterval time.Duration
	MissThreshold   int

	// Now fixes the reference time of the run (default: time.Now)
	Now    func() time.Time
	Logger *slog.Logger
}

// CollectResult contains the per-project sync results of a run
type CollectResult struct {
	Projects map[string]SyncResult
	Duration time.Duration
}

// Collect syncs every project, saving the store and writing its daily
// report after each one, then writes the aggregate report and the
// snapshot. The first error aborts the run; projects processed before it
// stay saved.
func Collect(ctx context.Context, opts CollectOptions) (*CollectResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	start := time.Now()
	now := clock().UTC()

	result := &CollectResult{Projects: make(map[string]SyncResult, len(opts.Projects))}

	for i, project := range opts.Projects {
		logger.Info("collecting issues",
			slog.String("project", project),
			slog.Int("index", i+1),
			slog.Int("total", len(opts.Projects)),
		)

		issues := opts.Store.EnsureProject(project)

		synced, err := SyncProject(ctx, opts.Source, project, issues, now, SyncOptions{
			RefreshInterval: opts.RefreshInterval,
			MissThreshold:   opts.MissThreshold,
			Logger:          logger,
		})
		if err != nil {
			return result, err
		}

		result.Projects[project] = synced

		if err := opts.Store.Save(); err != nil {
			return result, &SyncError{Project: project, Phase: PhaseSave, Err: err}
		}

		points := BuildSeries(issues.List(), SeriesStart, now)
		if err := WriteSeries(application.IssuesCSVFile(opts.DataDir, project), points); err != nil {
			return result, &SyncError{Project: project, Phase: PhaseReport, Err: err}
		}

		logger.Info("collected issues",
			slog.String("project", project),
			slog.Int("total", len(issues.Issues)),
			slog.Int("discovered", synced.Discovered),
			slog.Int("refreshed", synced.Refreshed),
		)
	}

	projects := opts.Store.Projects()

	logger.Info("writing aggregate report", slog.Int("projects", len(projects.Projects)))

	points := BuildSeries(projects.AllIssues(), SeriesStart, now)
	if err := WriteSeries(application.IssuesCSVFile(opts.DataDir, application.AllProjects), points); err != nil {
		return result, &SyncError{Project: application.AllProjects, Phase: PhaseReport, Err: err}
	}

	snapshot := BuildSnapshot(projects, opts.Projects, now)
	if err := WriteSnapshot(application.SnapshotFile(opts.DataDir), snapshot); err != nil {
		return result, &SyncError{Project: application.AllProjects, Phase: PhaseReport, Err: err}
	}

	result.Duration = time.Since(start)

	logger.Info("collection complete",
		slog.Int("projects", len(opts.Projects)),
		slog.Duration("duration", result.Duration),
	)

	return result, nil
}
