package sink

import "github.com/matzehuels/commitgraph/pkg/render"

// RenderPDF renders d as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d *render.Data, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(d, opts...))
}

// RenderPNG renders d as PNG via SVG conversion. A scale of 2.0 doubles the
// resolution for high-DPI displays.
func RenderPNG(d *render.Data, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(d, opts...), scale)
}
