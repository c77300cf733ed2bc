// Package render assembles the renderer-agnostic bundle that drawing
// adapters consume.
//
// # Overview
//
// [Build] runs the layout engine on a graph snapshot and resolves every
// style decision the template makes: lane and dot colors, message text and
// position, tag anchors and colors. The resulting [Data] is fully resolved,
// so an adapter never needs the graph or the template to draw it.
//
//	g := history.New()
//	g.Branch("master", history.BranchOptions{})
//	g.Commit("", history.CommitOptions{Subject: "init"})
//	data := render.Build(g, template.Resolve("metro", nil))
//
// Data is read-only after Build returns and is safe to hand to several
// adapters at once.
//
// # Adapters
//
// Anything that turns Data into output implements [Consumer]. Adapters that
// draw text rather than pixels implement the smaller [LineWriter] protocol
// instead and are driven by [Walk], which translates pixel offsets into lane
// counts:
//
//	left    = commit column
//	right   = last column - commit column
//	message = number of columns
//
// The sink subpackage holds the JSON, SVG, console and Graphviz adapters.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output through the external rsvg-convert
// tool (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
package render
