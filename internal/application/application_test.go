package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssuesCSVFile(t *testing.T) {
	tests := []struct {
		name    string
		project string
		want    string
	}{
		{
			name:    "named project",
			project: "craft-cli",
			want:    filepath.Join("html/data", "craft-cli-github.csv"),
		},
		{
			name:    "all projects",
			project: AllProjects,
			want:    filepath.Join("html/data", "all-projects-github.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IssuesCSVFile(DefaultDataDir, tt.project))
		})
	}
}

func TestDataFiles(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "issues-github.yaml"), IssuesDataFile("out"))
	assert.Equal(t, filepath.Join("out", "snapshot.json"), SnapshotFile("out"))
	assert.Equal(t, filepath.Join("out", "snapcraft-launchpad.csv"), LaunchpadCSVFile("out", "snapcraft"))
}
