package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/layout"
	"github.com/matzehuels/commitgraph/pkg/observability"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// GenerateLayout lays out g and builds its render data.
func GenerateLayout(ctx context.Context, g *history.Graph, t template.Template) *render.Data {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Len())
	start := time.Now()

	l := layout.Build(g, t)
	d := render.FromLayout(g, t, l)

	hooks.OnLayoutComplete(ctx, time.Since(start), nil)
	return d
}
