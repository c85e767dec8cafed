// Package core provides the issue collection logic for craft-stats.
//
// This package contains everything between the GitHub API and the files
// the dashboard reads. Functions return errors instead of printing, and
// take the reference time as a parameter so reports are reproducible.
//
// # Sync
//
// [SyncProject] brings one project's records up to date in two passes:
//
//  1. Refresh - records older than the refresh interval are fetched again
//  2. Discover - numbers above the highest known one are probed until
//     [DefaultMissThreshold] consecutive numbers are not found
//
// The remote side is the [IssueSource] interface; [GitHubSource] implements
// it on top of go-github and waits out rate limits.
//
// # Reports
//
// [BuildSeries] derives the daily open/closed/median-age series written to
// the per-project and aggregate CSV files. [BuildSnapshot] summarises the
// current state of each project for snapshot.json.
//
// [Collect] runs sync and reporting for every configured project in order.
package core
