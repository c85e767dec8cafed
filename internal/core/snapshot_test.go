package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/craft-stats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snapshotNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func snapshotFixture() *model.Projects {
	refreshed := snapshotNow
	recent := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	issues := model.NewProjectIssues()
	issues.Issues[1] = &model.Issue{ID: 1, Kind: model.KindIssue, OpenedAt: time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC), RefreshedAt: refreshed}
	issues.Issues[2] = &model.Issue{ID: 2, Kind: model.KindIssue, OpenedAt: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), RefreshedAt: refreshed}
	issues.Issues[3] = &model.Issue{ID: 3, Kind: model.KindIssue, OpenedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), RefreshedAt: refreshed}
	issues.Issues[4] = &model.Issue{ID: 4, Kind: model.KindPullRequest, OpenedAt: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), RefreshedAt: refreshed}
	issues.Issues[5] = &model.Issue{ID: 5, Kind: model.KindIssue, OpenedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ClosedAt: &recent, RefreshedAt: refreshed}
	issues.Issues[6] = &model.Issue{ID: 6, Kind: model.KindPullRequest, OpenedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ClosedAt: &recent, RefreshedAt: refreshed}
	issues.Issues[7] = &model.Issue{ID: 7, Kind: model.KindPullRequest, OpenedAt: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), ClosedAt: &old, RefreshedAt: refreshed}

	projects := model.NewProjects()
	projects.Projects["snapcraft"] = issues
	projects.Projects["rockcraft"] = model.NewProjectIssues()

	return projects
}

func TestBuildSnapshot(t *testing.T) {
	snapshot := BuildSnapshot(snapshotFixture(), []string{"snapcraft", "rockcraft", "missing"}, snapshotNow)

	require.Len(t, snapshot, 2)
	assert.NotContains(t, snapshot, "missing")

	assert.Equal(t, SnapshotEntry{
		OpenIssues:       3,
		OpenPRs:          1,
		MedianIssueAge:   ptr(20),
		MedianPRAge:      ptr(1),
		ClosedIssuesYear: 1,
		ClosedPRsYear:    1,
	}, snapshot["snapcraft"])

	assert.Equal(t, SnapshotEntry{}, snapshot["rockcraft"])
}

func TestBuildSnapshot_ClosedWindowBoundary(t *testing.T) {
	edge := snapshotNow.Add(-ClosedWindow)
	inside := edge.Add(time.Second)

	issues := model.NewProjectIssues()
	issues.Issues[1] = &model.Issue{ID: 1, OpenedAt: edge.Add(-time.Hour), ClosedAt: &edge, RefreshedAt: snapshotNow}
	issues.Issues[2] = &model.Issue{ID: 2, OpenedAt: edge.Add(-time.Hour), ClosedAt: &inside, RefreshedAt: snapshotNow}

	projects := model.NewProjects()
	projects.Projects["snapcraft"] = issues

	snapshot := BuildSnapshot(projects, []string{"snapcraft"}, snapshotNow)
	assert.Equal(t, 1, snapshot["snapcraft"].ClosedIssuesYear)
}

func TestWriteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	snapshot := BuildSnapshot(snapshotFixture(), []string{"snapcraft", "rockcraft"}, snapshotNow)

	require.NoError(t, WriteSnapshot(path, snapshot))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, map[string]any{
		"open_issues":        float64(3),
		"open_prs":           float64(1),
		"median_issue_age":   float64(20),
		"median_pr_age":      float64(1),
		"closed_issues_year": float64(1),
		"closed_prs_year":    float64(1),
	}, decoded["snapcraft"])

	assert.Nil(t, decoded["rockcraft"]["median_issue_age"])
	assert.Contains(t, decoded["rockcraft"], "median_pr_age")
}

func TestBuildSnapshot_MedianOfEvenCount(t *testing.T) {
	issues := model.NewProjectIssues()
	issues.Issues[1] = &model.Issue{ID: 1, Kind: model.KindIssue, OpenedAt: snapshotNow.Add(-10 * 24 * time.Hour), RefreshedAt: snapshotNow}
	issues.Issues[2] = &model.Issue{ID: 2, Kind: model.KindIssue, OpenedAt: snapshotNow.Add(-4 * 24 * time.Hour), RefreshedAt: snapshotNow}

	projects := model.NewProjects()
	projects.Projects["snapcraft"] = issues

	snapshot := BuildSnapshot(projects, []string{"snapcraft"}, snapshotNow)

	require.NotNil(t, snapshot["snapcraft"].MedianIssueAge)
	assert.Equal(t, 7, *snapshot["snapcraft"].MedianIssueAge)
	assert.Nil(t, snapshot["snapcraft"].MedianPRAge)
}
