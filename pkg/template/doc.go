// Package template resolves the style configuration used to lay out and
// render a commit graph.
//
// # Overview
//
// A [Template] is an immutable style snapshot: the branch color cycle, lane
// spacing and line width, commit spacing and dot geometry, message font and
// visibility, arrow geometry, tag colors, orientation and density mode. The
// layout engine reads spacing, orientation and mode from it; the render data
// builder reads the rest.
//
// # Presets
//
// Two presets are built in:
//
//   - "metro" (the default): thick lines, wide spacing, bezier merge curves
//   - "blackarrow": thin lines, stroked dots, straight merges with arrows
//
// [Resolve] never fails. An unknown preset name falls back to [DefaultPreset]
// because the choice of style carries no correctness risk:
//
//	t := template.Resolve("metro", nil)
//	t = template.Resolve("no-such-preset", nil) // same as "metro"
//
// # Overrides
//
// [Options] mirrors every Template field with a pointer so that an omitted
// field keeps the preset's value at the same nesting level. The color cycle
// is a slice and is replaced wholesale when given:
//
//	spacing := 80.0
//	t := template.Resolve("blackarrow", &template.Options{
//	    Colors: []string{"#ff0000", "#00ff00"},
//	    Branch: &template.BranchOptions{Spacing: &spacing},
//	})
//
// Compact mode always disables message display after merging.
//
// Overrides are decoded strictly from YAML, TOML or JSON with
// [DecodeOptions] and [LoadOptionsFile]: unknown keys are rejected rather
// than ignored so that a typo never silently falls back to a preset value.
//
// # Colors
//
// A branch's color is Colors[column mod len(Colors)] unless the template's
// Branch.Color pins a single color, or the branch or commit carries its own
// override. See [Template.BranchColor].
package template
