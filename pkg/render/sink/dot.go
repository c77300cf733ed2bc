package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// dotScale converts layout units to Graphviz points for pos attributes.
const dotScale = 0.75

// ToDOT converts render data to Graphviz DOT. Commits become filled circles
// grouped by branch so the dot engine keeps lanes straight; tags become
// boxes attached with dashed edges. Every commit also carries its layout
// position as a pinned pos attribute for engines that honor it (neato -n).
func ToDOT(d *render.Data) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	rankdir := "TB"
	if d.Orientation == template.Horizontal {
		rankdir = "LR"
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.3, label=\"\", fontsize=12];\n")
	fmt.Fprintf(&buf, "  edge [arrowhead=none, penwidth=%s];\n", fmtFloat(max(d.Template.Branch.LineWidth/4, 1)))
	buf.WriteString("\n")

	for _, c := range d.Commits {
		attrs := []string{
			fmt.Sprintf("fillcolor=%q", c.Dot.Color),
			fmt.Sprintf("color=%q", c.Color),
			fmt.Sprintf("group=%q", c.Branch),
			fmt.Sprintf("tooltip=%q", c.HashAbbrev+" "+c.Subject),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(c.X*dotScale), fmtFloat(-c.Y*dotScale)),
		}
		if c.Display {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", c.Message))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Hash, strings.Join(attrs, ", "))
	}

	if len(d.Tags) > 0 {
		buf.WriteString("\n")
	}
	for _, t := range d.Tags {
		id := "tag:" + t.Name
		fmt.Fprintf(&buf, "  %q [shape=box, fixedsize=false, style=\"rounded,filled\", label=%q, fontcolor=%q, fillcolor=%q];\n",
			id, t.Name, t.Color, t.BgColor)
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", t.Commit, id)
	}

	buf.WriteString("\n")
	for _, l := range d.Links {
		attrs := []string{fmt.Sprintf("color=%q", l.Color)}
		if l.Arrow != nil {
			attrs = append(attrs, "dir=back", "arrowtail=normal")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Parent, l.Child, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(f float64) string {
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg header with one sized in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
