// Package layout computes deterministic geometry for a commit graph.
//
// # Overview
//
// [Build] is a pure function of a [history.Graph] snapshot and a
// [template.Template]. It never mutates the graph and keeps no state
// between calls, so the same history and template always produce the same
// [Layout], whatever order renderers later draw it in.
//
// # Sequence and Rows
//
// Commits are ordered topologically with Kahn's algorithm; among commits
// with no ordering constraint, issuance order wins. In normal mode each
// commit gets its own row. In compact mode a non-merge commit may share the
// row of the commit right before it when that commit is on another branch
// and the commit's own branch was already drawn above that row, so
// concurrent work on separate lanes collapses into fewer rows.
//
// # Axes
//
// All spacing math happens on two abstract axes:
//
//   - primary: Commit.SpacingY × row (the commit sequence)
//   - secondary: Branch.Spacing × column (the lanes)
//
// Vertical orientation maps primary to y and secondary to x; horizontal
// orientation swaps them wholesale afterwards. Relative layout is therefore
// identical in both orientations.
//
// # Links
//
// Every (commit, parent) pair yields one [Link]:
//
//   - [LinkLane] joins consecutive commits of one branch
//   - [LinkFork] joins a branch's first commit to its fork point
//   - [LinkMerge] joins a merge commit to a non-first parent
//
// Link endpoints are trimmed by the dot radius so lines end at the dot
// boundary. Bezier links are S-curves whose control points sit halfway
// along the primary axis; straight links are plain segments. When the
// template enables arrows, each link carries a triangle pointing at the
// parent.
//
// [history.Graph]: github.com/matzehuels/commitgraph/pkg/history
// [template.Template]: github.com/matzehuels/commitgraph/pkg/template
package layout
