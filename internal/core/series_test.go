package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/craft-stats/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seriesFixture() []*model.Issue {
	closed := time.Date(2021, 1, 4, 12, 0, 0, 0, time.UTC)

	return []*model.Issue{
		{
			ID:          1,
			Kind:        model.KindPullRequest,
			OpenedAt:    time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			RefreshedAt: time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Kind:        model.KindIssue,
			OpenedAt:    time.Date(2021, 1, 2, 10, 0, 0, 0, time.UTC),
			ClosedAt:    &closed,
			RefreshedAt: time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildSeries(t *testing.T) {
	now := time.Date(2021, 1, 5, 8, 0, 0, 0, time.UTC)

	points := BuildSeries(seriesFixture(), SeriesStart, now)

	want := []DataPoint{
		// #1 opened exactly at midnight is not yet open
		{Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Open: 0, Closed: 0, MedianAge: nil},
		{Date: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1, Closed: 0, MedianAge: ptr(1)},
		// median of Jan 1 00:00 and Jan 2 10:00 is Jan 1 17:00
		{Date: time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), Open: 2, Closed: 0, MedianAge: ptr(1)},
		{Date: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), Open: 2, Closed: 1, MedianAge: ptr(2)},
		{Date: time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), Open: 1, Closed: 0, MedianAge: ptr(4)},
	}

	assert.Equal(t, want, points)
}

func TestBuildSeries_WindowIncludesToday(t *testing.T) {
	now := time.Date(2021, 3, 1, 23, 59, 0, 0, time.UTC)

	points := BuildSeries(nil, SeriesStart, now)

	// Jan 31 + Feb 28 + Mar 1
	require.Len(t, points, 60)
	assert.Equal(t, SeriesStart, points[0].Date)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), points[59].Date)

	for _, p := range points {
		assert.Zero(t, p.Open)
		assert.Nil(t, p.MedianAge)
	}
}

func TestBuildSeries_NowBeforeStart(t *testing.T) {
	assert.Nil(t, BuildSeries(seriesFixture(), SeriesStart, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestBuildSeries_PooledProjects(t *testing.T) {
	projects := model.NewProjects()

	for name, opened := range map[string]time.Time{
		"snapcraft":  time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC),
		"rockcraft":  time.Date(2021, 1, 1, 8, 0, 0, 0, time.UTC),
		"charmcraft": time.Date(2021, 1, 3, 8, 0, 0, 0, time.UTC),
	} {
		issues := model.NewProjectIssues()
		issues.Issues[1] = &model.Issue{ID: 1, OpenedAt: opened, RefreshedAt: opened}
		projects.Projects[name] = issues
	}

	points := BuildSeries(projects.AllIssues(), SeriesStart, time.Date(2021, 1, 2, 12, 0, 0, 0, time.UTC))

	require.Len(t, points, 2)
	assert.Equal(t, 0, points[0].Open)
	assert.Equal(t, 2, points[1].Open)
	require.NotNil(t, points[1].MedianAge)
	assert.Equal(t, 0, *points[1].MedianAge)
}

func TestDataPoint_CSVRow(t *testing.T) {
	p := DataPoint{Date: time.Date(2022, 3, 7, 0, 0, 0, 0, time.UTC), Open: 12, Closed: 3, MedianAge: ptr(40)}
	assert.Equal(t, []string{"2022-Mar-07", "12", "3", "40"}, p.CSVRow())

	empty := DataPoint{Date: time.Date(2022, 3, 8, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, []string{"2022-Mar-08", "0", "0", ""}, empty.CSVRow())
}

func TestWriteSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapcraft-github.csv")
	now := time.Date(2021, 1, 5, 8, 0, 0, 0, time.UTC)

	require.NoError(t, WriteSeries(path, BuildSeries(seriesFixture(), SeriesStart, now)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "date,issues,closed,age\n" +
		"2021-Jan-01,0,0,\n" +
		"2021-Jan-02,1,0,1\n" +
		"2021-Jan-03,2,0,1\n" +
		"2021-Jan-04,2,1,2\n" +
		"2021-Jan-05,1,0,4\n"
	assert.Equal(t, want, string(data))
}
