package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/commitgraph/pkg/layout"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/template"
)

const (
	defaultMargin   = 20.0
	defaultFontSize = 12.0
	charWidthRatio  = 0.6 // average glyph width per font size unit
	labelHeight     = 18.0
	labelPadding    = 6.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	margin     float64
	background string
}

// WithMargin sets the blank border around the drawing.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithBackground fills the canvas with a color. The default is transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG draws d as a standalone SVG document.
func RenderSVG(d *render.Data, opts ...SVGOption) []byte {
	r := svgRenderer{margin: defaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	box := bounds(d)
	minX, minY := box.minX-r.margin, box.minY-r.margin
	w, h := box.maxX-box.minX+2*r.margin, box.maxY-box.minY+2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			minX, minY, w, h, escape(r.background))
	}

	buf.WriteString(`  <g class="links">` + "\n")
	for _, l := range d.Links {
		renderLink(&buf, l)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="commits">` + "\n")
	for _, c := range d.Commits {
		renderDot(&buf, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="branches">` + "\n")
	for _, b := range d.Branches {
		renderBranchLabel(&buf, b)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="tags">` + "\n")
	for _, t := range d.Tags {
		renderTag(&buf, t)
	}
	buf.WriteString("  </g>\n")

	if d.Orientation == template.Vertical {
		buf.WriteString(`  <g class="messages">` + "\n")
		for _, c := range d.Commits {
			if c.Display {
				renderMessage(&buf, c)
			}
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLink(buf *bytes.Buffer, l render.Link) {
	path := fmt.Sprintf("M %.2f %.2f L %.2f %.2f", l.Start.X, l.Start.Y, l.End.X, l.End.Y)
	if l.Curved {
		path = fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f",
			l.Start.X, l.Start.Y, l.Control1.X, l.Control1.Y, l.Control2.X, l.Control2.Y, l.End.X, l.End.Y)
	}
	fmt.Fprintf(buf, `    <path class="link-%s" d="%s" fill="none" stroke="%s" stroke-width="%.1f" data-child="%s" data-parent="%s"/>`+"\n",
		l.Kind, path, escape(l.Color), l.LineWidth, l.Child, l.Parent)
	if l.Arrow != nil {
		a := l.Arrow
		fmt.Fprintf(buf, `    <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
			a.Tip.X, a.Tip.Y, a.Left.X, a.Left.Y, a.Right.X, a.Right.Y, escape(l.Color))
	}
}

func renderDot(buf *bytes.Buffer, c render.Commit) {
	stroke := ""
	if c.Dot.StrokeColor != "" && c.Dot.StrokeWidth > 0 {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="%.1f"`, escape(c.Dot.StrokeColor), c.Dot.StrokeWidth)
	}
	fmt.Fprintf(buf, `    <circle id="commit-%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s><title>%s</title></circle>`+"\n",
		c.Hash, c.X, c.Y, c.Dot.Radius, escape(c.Dot.Color), stroke, escape(c.HashAbbrev+" "+c.Subject))
}

func renderBranchLabel(buf *bytes.Buffer, b render.BranchPath) {
	w := textWidth(b.Name, b.LabelFont) + 2*labelPadding
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.1f" rx="4" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
		b.Label.X, b.Label.Y-labelHeight/2, w, labelHeight, escape(b.Color))
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s" style="font: %s" dominant-baseline="middle">%s</text>`+"\n",
		b.Label.X+labelPadding, b.Label.Y, escape(b.Color), escape(b.LabelFont), escape(b.Name))
}

func renderTag(buf *bytes.Buffer, t render.Tag) {
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.1f" rx="3" fill="%s"/>`+"\n",
		t.AnchorX, t.AnchorY-labelHeight/2, t.Width, labelHeight, escape(t.BgColor))
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s" style="font: %s" dominant-baseline="middle">%s</text>`+"\n",
		t.AnchorX+labelPadding, t.AnchorY, escape(t.Color), escape(t.Font), escape(t.Name))
}

func renderMessage(buf *bytes.Buffer, c render.Commit) {
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s" style="font: %s" dominant-baseline="middle">%s</text>`+"\n",
		c.MessageX, c.MessageY, escape(c.MessageColor), escape(c.MessageFont), escape(c.Message))
}

type box struct{ minX, minY, maxX, maxY float64 }

func (b *box) add(x, y float64) {
	b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
	b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
}

// bounds returns the extent of everything RenderSVG draws.
func bounds(d *render.Data) box {
	b := box{}
	r := d.Template.DotRadius()
	for _, c := range d.Commits {
		b.add(c.X-r, c.Y-r)
		b.add(c.X+r, c.Y+r)
		if c.Display && d.Orientation == template.Vertical {
			b.add(c.MessageX+textWidth(c.Message, c.MessageFont), c.MessageY+labelHeight/2)
		}
	}
	for _, br := range d.Branches {
		b.add(br.Label.X, br.Label.Y-labelHeight/2)
		b.add(br.Label.X+textWidth(br.Name, br.LabelFont)+2*labelPadding, br.Label.Y+labelHeight/2)
	}
	for _, t := range d.Tags {
		b.add(t.AnchorX, t.AnchorY-labelHeight/2)
		b.add(t.AnchorX+t.Width, t.AnchorY+labelHeight/2)
	}
	for _, l := range d.Links {
		for _, p := range []layout.Point{l.Control1, l.Control2} {
			b.add(p.X, p.Y)
		}
	}
	return b
}

// textWidth estimates the rendered width of s in a CSS font shorthand such
// as "normal 14pt Arial".
func textWidth(s, font string) float64 {
	return float64(len(s)) * fontSize(font) * charWidthRatio
}

func fontSize(font string) float64 {
	for _, f := range strings.Fields(font) {
		for _, unit := range []string{"pt", "px"} {
			if v, ok := strings.CutSuffix(f, unit); ok {
				if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
					if unit == "pt" {
						n *= 4.0 / 3.0
					}
					return math.Round(n*100) / 100
				}
			}
		}
	}
	return defaultFontSize
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
