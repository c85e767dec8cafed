package core

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/inovacc/craft-stats/internal/model"
)

// DefaultMissThreshold is the number of consecutive unknown issue numbers
// after which discovery assumes it has passed the newest issue
const DefaultMissThreshold = 5

// RemoteIssue is the state of an issue as reported by the remote source
type RemoteIssue struct {
	Kind     model.Kind
	OpenedAt time.Time
	ClosedAt *time.Time
}

// IssueSource fetches single issues by number. Implementations return
// ErrNotFound when the number does not resolve and a *TransportError for
// every other failure.
type IssueSource interface {
	FetchIssue(ctx context.Context, project string, id int) (*RemoteIssue, error)
}

// SyncOptions configures a sync pass
type SyncOptions struct {
	// RefreshInterval is how old RefreshedAt may be before a record is fetched again
	RefreshInterval time.Duration

	// MissThreshold stops discovery after this many consecutive misses (default: 5)
	MissThreshold int

	Logger *slog.Logger
}

// SyncResult counts the work done by a sync pass
type SyncResult struct {
	Stale      int // records due for refresh
	Refreshed  int // stale records successfully re-fetched
	Discovered int // new records
}

// SyncProject brings the issues of one project up to date with source.
//
// Records whose RefreshedAt is older than the refresh interval are fetched
// again and replaced; a stale record the source no longer finds is kept as
// is. New issues are then discovered by probing numbers above the highest
// known one until MissThreshold consecutive numbers are not found.
//
// Any error other than ErrNotFound aborts the pass and is returned as a
// *SyncError. Records updated before the failure stay updated in issues.
func SyncProject(ctx context.Context, source IssueSource, project string, issues *model.ProjectIssues, now time.Time, opts SyncOptions) (SyncResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	threshold := opts.MissThreshold
	if threshold <= 0 {
		threshold = DefaultMissThreshold
	}

	logger = logger.With(slog.String("project", project))

	var result SyncResult

	if err := refreshStale(ctx, source, project, issues, now, opts.RefreshInterval, logger, &result); err != nil {
		return result, &SyncError{Project: project, Phase: PhaseRefresh, Err: err}
	}

	if err := discoverNew(ctx, source, project, issues, now, threshold, logger, &result); err != nil {
		return result, &SyncError{Project: project, Phase: PhaseDiscover, Err: err}
	}

	return result, nil
}

func refreshStale(ctx context.Context, source IssueSource, project string, issues *model.ProjectIssues, now time.Time, interval time.Duration, logger *slog.Logger, result *SyncResult) error {
	var stale []int

	for id, issue := range issues.Issues {
		if now.Sub(issue.RefreshedAt) > interval {
			stale = append(stale, id)
		}
	}

	slices.Sort(stale)
	result.Stale = len(stale)

	if len(stale) > 0 {
		logger.Info("refreshing stale issues", slog.Int("stale", len(stale)))
	}

	for _, id := range stale {
		if err := ctx.Err(); err != nil {
			return err
		}

		remote, err := source.FetchIssue(ctx, project, id)
		if errors.Is(err, ErrNotFound) {
			logger.Debug("stale issue not found, keeping previous state", slog.Int("id", id))
			continue
		}

		if err != nil {
			return err
		}

		record, err := newRecord(id, remote, now, logger)
		if err != nil {
			logger.Warn("invalid issue from source, keeping previous state", slog.Int("id", id), slog.Any("error", err))
			continue
		}

		issues.Issues[id] = record
		result.Refreshed++

		logger.Debug("refreshed issue", slog.Int("id", id), slog.String("issue", issues.Issues[id].String()))
	}

	return nil
}

func discoverNew(ctx context.Context, source IssueSource, project string, issues *model.ProjectIssues, now time.Time, threshold int, logger *slog.Logger, result *SyncResult) error {
	start := issues.MaxID() + 1
	misses := 0

	logger.Debug("discovering new issues", slog.Int("from", start))

	for id := start; misses < threshold; id++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		remote, err := source.FetchIssue(ctx, project, id)
		if errors.Is(err, ErrNotFound) {
			misses++
			logger.Debug("issue not found", slog.Int("id", id), slog.Int("misses", misses))

			continue
		}

		if err != nil {
			return err
		}

		misses = 0

		record, err := newRecord(id, remote, now, logger)
		if err != nil {
			logger.Warn("invalid issue from source, skipping", slog.Int("id", id), slog.Any("error", err))
			continue
		}

		issues.Issues[id] = record
		result.Discovered++

		logger.Debug("collected issue", slog.Int("id", id), slog.String("issue", issues.Issues[id].String()))
	}

	return nil
}

// newRecord builds the stored form of remote. A close date that is not
// after the open date is moved to one second after it; any other invalid
// record is an error and must not be stored.
func newRecord(id int, remote *RemoteIssue, now time.Time, logger *slog.Logger) (*model.Issue, error) {
	record := &model.Issue{
		ID:          id,
		Kind:        remote.Kind,
		OpenedAt:    remote.OpenedAt,
		ClosedAt:    remote.ClosedAt,
		RefreshedAt: now,
	}

	if record.ClosedAt != nil && !record.OpenedAt.IsZero() && !record.ClosedAt.After(record.OpenedAt) {
		closed := record.OpenedAt.Add(time.Second)

		logger.Warn("close date not after open date, adjusting",
			slog.Int("id", id),
			slog.Time("opened", record.OpenedAt),
			slog.Time("closed", *record.ClosedAt),
		)

		record.ClosedAt = &closed
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}
