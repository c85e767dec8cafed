package core

import (
	"time"

	"github.com/inovacc/craft-stats/internal/encoding"
	"github.com/inovacc/craft-stats/internal/model"
)

// ClosedWindow is how far back closed issues are counted in a snapshot
const ClosedWindow = 365 * 24 * time.Hour

// SnapshotEntry summarises one project as of the snapshot time
type SnapshotEntry struct {
	OpenIssues       int  `json:"open_issues"`
	OpenPRs          int  `json:"open_prs"`
	MedianIssueAge   *int `json:"median_issue_age"`
	MedianPRAge      *int `json:"median_pr_age"`
	ClosedIssuesYear int  `json:"closed_issues_year"`
	ClosedPRsYear    int  `json:"closed_prs_year"`
}

// Snapshot maps project name to its summary
type Snapshot map[string]SnapshotEntry

// BuildSnapshot summarises the named projects as of now. Names missing
// from projects are skipped.
func BuildSnapshot(projects *model.Projects, names []string, now time.Time) Snapshot {
	snapshot := make(Snapshot, len(names))

	for _, name := range names {
		project, ok := projects.Projects[name]
		if !ok || project == nil {
			continue
		}

		snapshot[name] = summarize(project.List(), now)
	}

	return snapshot
}

func summarize(issues []*model.Issue, now time.Time) SnapshotEntry {
	var entry SnapshotEntry
	var openIssues, openPRs []time.Time

	closedSince := now.Add(-ClosedWindow)

	for _, issue := range issues {
		isPR := issue.Kind == model.KindPullRequest

		if issue.IsOpen(now) {
			if isPR {
				openPRs = append(openPRs, issue.OpenedAt)
			} else {
				openIssues = append(openIssues, issue.OpenedAt)
			}
		}

		if issue.ClosedAt != nil && issue.ClosedAt.After(closedSince) && !issue.ClosedAt.After(now) {
			if isPR {
				entry.ClosedPRsYear++
			} else {
				entry.ClosedIssuesYear++
			}
		}
	}

	entry.OpenIssues = len(openIssues)
	entry.OpenPRs = len(openPRs)
	entry.MedianIssueAge = MedianAge(openIssues, now)
	entry.MedianPRAge = MedianAge(openPRs, now)

	return entry
}

// WriteSnapshot replaces the snapshot file at path.
func WriteSnapshot(path string, snapshot Snapshot) error {
	return encoding.WriteJSON(path, snapshot)
}
