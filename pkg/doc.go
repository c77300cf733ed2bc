// Package pkg holds the commitgraph libraries.
//
// # Overview
//
// Commitgraph draws git-style commit graphs. A graph is built by replaying
// branch, commit, merge and tag operations (or importing commit records),
// laid out on a grid of lanes and rows, and drawn by a sink.
//
// # Architecture
//
// The data flow:
//
//	script (YAML/JSON)      commit records (JSON)
//	        ↓                        ↓
//	    [script] replay          [io] import
//	        ↘                      ↙
//	          [history] commit graph
//	                  ↓
//	          [layout] geometry
//	                  ↓
//	     [render] render data → [render/sink] json, svg, txt, dot, pdf, png
//
// [template] supplies the presets and overrides every stage reads, and
// [pipeline] strings the stages together behind an artifact [cache].
//
// # Quick Start
//
//	g := history.New()
//	g.Branch("master", history.BranchOptions{})
//	g.Commit("", history.CommitOptions{Subject: "Initial commit"})
//
//	d := render.Build(g, layout.Build(g, template.Default()))
//	svg := sink.RenderSVG(d)
//
// Or from a script:
//
//	s, _ := pipeline.Load("release.yaml")
//	res, _ := pipeline.NewRunner(nil, nil, nil).Execute(ctx, s, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// [history] - The commit graph model: branches, commits, tags, HEAD and the
// lane column allocator. Deterministic hashes make replays byte-identical.
//
// [layout] - Pure geometry: rows, columns, lane paths, link curves and
// arrows for either orientation and both row modes.
//
// [render] - Render data (what every sink draws) and SVG to PDF/PNG
// conversion.
//
// [template] - The metro and blackarrow presets and strict YAML, TOML and
// JSON override decoding.
//
// [script], [io] - Operation scripts and the commit record format.
//
// [pipeline], [cache], [observability], [errors] - Orchestration, artifact
// caching, instrumentation hooks and coded errors.
//
// [history]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/history
// [layout]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/render/sink
// [template]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/template
// [script]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/script
// [io]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/commitgraph/pkg/errors
package pkg
