// Package script replays declarative operation scripts onto a commit graph.
//
// # Overview
//
// A script names a template, optional style overrides, a default author and
// an ordered list of steps. Each step holds exactly one operation:
//
//	template: metro
//	options:
//	  orientation: horizontal
//	author: {name: Ada, email: ada@example.com}
//	steps:
//	  - branch: master
//	  - commit: Initial commit
//	  - branch: {name: develop, color: "#d33"}
//	  - commit: {subject: Add parser, tag: v0.1}
//	  - checkout: master
//	  - merge: {source: develop, close: true}
//	  - tag: v1.0
//
// Steps with a single required argument accept a scalar shorthand: a branch
// name, a commit subject, a merge source or a tag name. Scripts are decoded
// strictly from YAML or JSON; unknown keys are errors.
//
// # Replay
//
// [Replay] applies steps in order and stops at the first failing step. The
// returned error names the step and wraps the graph error, so callers can
// still match history sentinels:
//
//	err := script.Replay(s, g)
//	if errors.Is(err, history.ErrNothingToMerge) { ... }
//
// [Run] builds a fresh graph with the script's author, replays the steps and
// resolves the template, which is what the pipeline and the HTTP server use.
//
// # Imports
//
// An import step loads records inline or from a file. File paths are
// resolved against [WithBaseDir] and validated; [WithoutFiles] rejects file
// imports entirely, which servers use for untrusted scripts.
package script
