// Package store owns the persisted GitHub issue snapshot.
//
// The snapshot is a single YAML document holding every tracked project and
// every issue seen so far. [Load] reads it once at start-up; the collector
// mutates the in-memory [model.Projects] through [Store.Projects] and calls
// [Store.Save] after each project so a crash keeps earlier progress.
//
// A file that exists but cannot be parsed, or that holds records breaking
// the model invariants, is reported as [ErrStoreCorrupt]. It is never
// silently replaced by an empty store, which would throw away history.
package store
