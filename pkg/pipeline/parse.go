package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/observability"
	"github.com/matzehuels/commitgraph/pkg/script"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Parse decodes a script, detecting JSON by its leading brace.
func Parse(data []byte) (*script.Script, error) {
	return script.DecodeBytes(data)
}

// Load decodes a script file.
func Load(path string) (*script.Script, error) {
	return script.Load(path)
}

// Hash returns the content hash of a decoded script. Scripts that differ
// only in formatting hash the same.
func Hash(s *script.Script) string {
	return cache.HashJSON(s)
}

// Replay applies s to a new graph.
func Replay(ctx context.Context, s *script.Script, opts Options) (*history.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnReplayStart(ctx, len(s.Steps))
	start := time.Now()

	var ropts []script.Option
	if opts.BaseDir != "" {
		ropts = append(ropts, script.WithBaseDir(opts.BaseDir))
	}
	if opts.NoFileImport {
		ropts = append(ropts, script.WithoutFiles())
	}

	var gopts []history.Option
	if s.Author != nil {
		gopts = append(gopts, history.WithAuthor(*s.Author))
	}
	g := history.New(gopts...)
	err := script.Replay(s, g, ropts...)

	hooks.OnReplayComplete(ctx, g.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ResolveTemplate resolves the template a run renders with: the script's
// preset and options, then opts.Template and opts.Overrides on top.
func ResolveTemplate(s *script.Script, opts Options) (template.Template, error) {
	if err := ValidateTemplate(opts.Template); err != nil {
		return template.Template{}, err
	}
	base := *s
	if opts.Template != "" {
		base.Template = opts.Template
	}
	t, err := script.ResolveTemplate(&base)
	if err != nil {
		return template.Template{}, err
	}
	if opts.Overrides != nil {
		t = t.Merge(opts.Overrides)
		if err := t.Validate(); err != nil {
			return template.Template{}, err
		}
	}
	return t, nil
}
