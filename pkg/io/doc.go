// Package io provides JSON import and export of commit histories.
//
// # Overview
//
// Histories travel as an ordered list of commit records, the shape produced
// by git log exporters:
//
//	[
//	  {
//	    "hash": "a1b2c3d4...",
//	    "parents": ["f0e1d2c3..."],
//	    "author": {"name": "Ada", "email": "ada@example.com", "timestamp": "2024-01-02T15:04:05Z"},
//	    "subject": "Add parser",
//	    "refs": ["HEAD -> main", "tag: v1.0"]
//	  },
//	  ...
//	]
//
// Records may be listed newest first (git log order) or oldest first. A
// document may also wrap the list in an object under "commits".
//
// # Import
//
// Use [ImportJSON] to read records from a file path, or [ReadJSON] to read
// from any io.Reader. [LoadGraph] reads and imports in one step:
//
//	g, err := io.LoadGraph("history.json")
//
// Decoding errors carry the INVALID_FORMAT code; a missing file carries
// FILE_NOT_FOUND. Structural problems (dangling parents, duplicate hashes)
// are reported by [history.Graph.Import] as INVALID_IMPORT.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to
// any io.Writer. Export is oldest first and carries the refs currently
// pointing at each commit, so an exported file re-imports to the same
// branch tips, tags and HEAD.
//
// [history.Graph.Import]: github.com/matzehuels/commitgraph/pkg/history.Graph.Import
package io
