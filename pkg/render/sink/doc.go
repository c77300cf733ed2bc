// Package sink provides output format adapters for commit graph render data.
//
// # Overview
//
// A "sink" turns a [render.Data] bundle into a final output format. Sinks
// read the bundle and never change it, so one bundle can feed several sinks
// concurrently. This package provides:
//
//   - JSON: the render data itself, for external drawing tools
//   - SVG: a standalone vector drawing
//   - Text: a colored console graph driven through [render.Walk]
//   - DOT: a Graphviz graph with pinned commit positions
//   - PDF and PNG: SVG converted by rsvg-convert
//
// # SVG Output
//
// [RenderSVG] draws links, arrows, dots, branch labels, tags and messages
// in that order:
//
//	svg := sink.RenderSVG(data, sink.WithMargin(40))
//
// Messages are only drawn in vertical orientation and only for commits
// whose Display flag is set.
//
// # Text Output
//
// [Console] implements both [render.Consumer] and [render.LineWriter]. It
// prints one line per commit, with lanes colored by lipgloss unless plain
// output is requested:
//
//	c := sink.NewConsole(os.Stdout, sink.WithPlain())
//	err := c.Consume(data)
//
// # DOT Output
//
// [ToDOT] emits a digraph with one node per commit, grouped by branch, and
// the layout position of each commit as a pinned pos attribute (honored by
// neato -n). [RenderDOTSVG] renders it through go-graphviz with the dot
// engine as a classic node-link diagram.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.Data]: github.com/matzehuels/commitgraph/pkg/render.Data
// [render.Walk]: github.com/matzehuels/commitgraph/pkg/render.Walk
// [render.Consumer]: github.com/matzehuels/commitgraph/pkg/render.Consumer
// [render.LineWriter]: github.com/matzehuels/commitgraph/pkg/render.LineWriter
// [render.ToPDF]: github.com/matzehuels/commitgraph/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/commitgraph/pkg/render.ToPNG
package sink
