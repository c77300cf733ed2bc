// Package history provides the mutable commit graph model: branches,
// commits, tags and HEAD, built by applying operations in call order.
//
// # Overview
//
// A [Graph] is an explicit registry owned by the caller. Nothing is global:
// two graphs in the same process share no state, so tests and concurrent
// requests never contaminate each other.
//
//	g := history.New()
//	g.Branch("master", history.BranchOptions{})
//	g.Commit("", history.CommitOptions{Subject: "init"})
//	g.Branch("develop", history.BranchOptions{})
//	g.Commit("", history.CommitOptions{Subject: "feature"})
//	g.Merge("develop", "master", history.MergeOptions{})
//
// Every operation fails fast and leaves the graph exactly as it was before
// the call. Errors wrap the sentinels declared in this package, so callers
// match them with the standard errors.Is, or read the machine-readable code
// with the pkg/errors helpers.
//
// # Branch Lifecycle
//
// A branch is created [Active] and moves to one of two terminal states:
//
//   - [Merged]: retired by a merge with MergeOptions.CloseSource
//   - [Deleted]: retired by [Graph.DeleteBranch]
//
// Retired branches keep their commits, but reject commits, checkouts and
// merges. A branch name stays reserved until [Graph.Clear] or
// [Graph.Import], even after the branch is deleted.
//
// HEAD always names an active branch or nothing. Deleting the checked-out
// branch fails with [ErrDeleteHead]; closing it by merge moves HEAD to the
// merge target.
//
// # Columns
//
// Each branch holds a lane column assigned by a min-free-slot allocator: a
// new branch takes the smallest column not held by a live branch, and
// retiring a branch releases its column for branches created afterwards.
// Allocation follows the graph's logical clock, so when several branches
// compete for freed columns the one created earlier wins.
//
// [Graph.Import] synthesizes the same lifecycle for a loaded history: a
// branch is created at its first commit and, when no ref keeps it alive,
// retired after the last commit that still references it.
//
// # Hashes
//
// Commits created without an explicit hash get a deterministic name-based
// UUID (version 5) over their sequence number, branch, subject and parents,
// rendered as 32 hex digits. Replaying the same operations therefore yields
// the same hashes, and everything downstream stays byte-identical.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Operations mutate branch tips and
// column state, so callers must synchronize access if several goroutines
// share a graph.
package history
