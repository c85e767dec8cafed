package application

import (
	"path/filepath"
)

const (
	// AppName is the application name used for the binary and logs
	AppName = "craft-stats"

	// DefaultConfigFile is read from the working directory unless --config is given
	DefaultConfigFile = "starcraft-config.yaml"

	// DefaultDataDir is where the dashboard expects its data files
	DefaultDataDir = "html/data"

	// AllProjects is the pseudo project name selecting every tracked project
	AllProjects = "all"

	issuesDataFile = "issues-github.yaml"
	snapshotFile   = "snapshot.json"
)

// IssuesDataFile returns the path of the persisted issue store.
func IssuesDataFile(dataDir string) string {
	return filepath.Join(dataDir, issuesDataFile)
}

// IssuesCSVFile returns the path of the daily issue report for a project.
// The AllProjects name maps to the aggregate report.
func IssuesCSVFile(dataDir, project string) string {
	if project == AllProjects {
		return filepath.Join(dataDir, "all-projects-github.csv")
	}

	return filepath.Join(dataDir, project+"-github.csv")
}

// SnapshotFile returns the path of the cross-project snapshot.
func SnapshotFile(dataDir string) string {
	return filepath.Join(dataDir, snapshotFile)
}

// LaunchpadCSVFile returns the path of the bug status history for a Launchpad project.
func LaunchpadCSVFile(dataDir, project string) string {
	return filepath.Join(dataDir, project+"-launchpad.csv")
}
