// Package model defines the data structures shared by the collector.
//
// # Issue
//
// [Issue] is one GitHub issue or pull request as last fetched:
//
//	type Issue struct {
//	    ID          int        // issue number, unique per project
//	    Kind        Kind       // KindIssue or KindPullRequest
//	    OpenedAt    time.Time
//	    ClosedAt    *time.Time // nil while open
//	    RefreshedAt time.Time  // last fetch from GitHub
//	}
//
// [Projects] maps a project name to its [ProjectIssues]; it is the document
// persisted by the store package.
//
// # Config
//
// [Config] is loaded from starcraft-config.yaml and lists the tracked
// projects together with the refresh interval.
package model
