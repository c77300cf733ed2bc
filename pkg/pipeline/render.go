package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/commitgraph/pkg/observability"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/render/sink"
)

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatJSON:   "application/json",
	FormatSVG:    "image/svg+xml",
	FormatText:   "text/plain; charset=utf-8",
	FormatDOT:    "text/vnd.graphviz",
	FormatDOTSVG: "image/svg+xml",
	FormatPDF:    "application/pdf",
	FormatPNG:    "image/png",
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, d *render.Data, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, d, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, d *render.Data, opts Options) (map[string][]byte, error) {
	var svgOpts []sink.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		case FormatSVG:
			data = sink.RenderSVG(d, svgOpts...)
		case FormatText:
			data, err = sink.RenderText(d)
		case FormatDOT:
			data = []byte(sink.ToDOT(d))
		case FormatDOTSVG:
			data, err = sink.RenderDOTSVG(ctx, sink.ToDOT(d))
		case FormatPDF:
			data, err = sink.RenderPDF(d, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(d, opts.Scale, svgOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
