package script

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/io"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Option configures [Replay] and [Run].
type Option func(*replayer)

type replayer struct {
	baseDir string
	noFiles bool
	after   func(i int, step Step, g *history.Graph)
}

// WithBaseDir resolves import file paths relative to dir.
func WithBaseDir(dir string) Option {
	return func(r *replayer) { r.baseDir = dir }
}

// WithoutFiles rejects import steps that name a file.
func WithoutFiles() Option {
	return func(r *replayer) { r.noFiles = true }
}

// WithStepHook calls fn after each step applies, with the step's zero-based
// index and the graph in its state after the step.
func WithStepHook(fn func(i int, step Step, g *history.Graph)) Option {
	return func(r *replayer) { r.after = fn }
}

// Result is a replayed script.
type Result struct {
	Graph    *history.Graph
	Template template.Template
}

// Run replays s onto a new graph and resolves its template.
func Run(s *Script, opts ...Option) (*Result, error) {
	var gopts []history.Option
	if s.Author != nil {
		gopts = append(gopts, history.WithAuthor(*s.Author))
	}
	g := history.New(gopts...)
	if err := Replay(s, g, opts...); err != nil {
		return nil, err
	}
	t, err := ResolveTemplate(s)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Template: t}, nil
}

// ResolveTemplate merges the script's options over its named preset.
func ResolveTemplate(s *Script) (template.Template, error) {
	if s.Template != "" {
		if _, ok := template.Lookup(s.Template); !ok {
			return template.Template{}, errors.New(errors.ErrCodeInvalidTemplate,
				"unknown template %q (available: %v)", s.Template, template.Names())
		}
	}
	t := template.Resolve(s.Template, s.Options)
	if err := t.Validate(); err != nil {
		return template.Template{}, err
	}
	return t, nil
}

// Replay applies the steps of s to g in order. It stops at the first
// failing step; steps before it stay applied.
func Replay(s *Script, g *history.Graph, opts ...Option) error {
	r := replayer{}
	for _, opt := range opts {
		opt(&r)
	}
	for i, step := range s.Steps {
		kind := step.Kind()
		if kind == "" {
			return errors.New(errors.ErrCodeInvalidScript, "step %d must hold exactly one operation", i+1)
		}
		if err := r.apply(g, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, kind, err)
		}
		if r.after != nil {
			r.after(i, step, g)
		}
	}
	return nil
}

func (r *replayer) apply(g *history.Graph, step Step) error {
	switch {
	case step.Branch != nil:
		b := step.Branch
		_, err := g.Branch(b.Name, history.BranchOptions{From: b.From, Color: b.Color})
		return err
	case step.Commit != nil:
		c := step.Commit
		_, err := g.Commit(c.Branch, history.CommitOptions{
			Subject:  c.Subject,
			Body:     c.Body,
			Notes:    c.Notes,
			Author:   c.Author,
			Hash:     c.Hash,
			Tree:     c.Tree,
			Stats:    c.Stats,
			Tag:      c.Tag,
			Color:    c.Color,
			DotColor: c.DotColor,
		})
		return err
	case step.Merge != nil:
		m := step.Merge
		_, err := g.Merge(m.Source, m.Target, history.MergeOptions{
			NoMergeCommit: m.FastForward,
			CloseSource:   m.Close,
			Subject:       m.Subject,
			Body:          m.Body,
			Author:        m.Author,
			Hash:          m.Hash,
			Tag:           m.Tag,
			Color:         m.Color,
		})
		return err
	case step.Tag != nil:
		t := step.Tag
		_, err := g.Tag(t.Name, history.TagOptions{
			Branch:  t.Branch,
			Commit:  t.Commit,
			Color:   t.Color,
			BgColor: t.BgColor,
			Font:    t.Font,
		})
		return err
	case step.Checkout != nil:
		return g.Checkout(*step.Checkout)
	case step.Delete != nil:
		return g.DeleteBranch(*step.Delete)
	case step.Import != nil:
		return r.importStep(g, step.Import)
	case step.Clear:
		g.Clear()
		return nil
	}
	return errors.New(errors.ErrCodeInvalidScript, "empty step")
}

func (r *replayer) importStep(g *history.Graph, s *ImportStep) error {
	if s.File == "" {
		return g.Import(s.Records)
	}
	if len(s.Records) > 0 {
		return errors.New(errors.ErrCodeInvalidScript, "import takes a file or records, not both")
	}
	if r.noFiles {
		return errors.New(errors.ErrCodeUnsupported, "file imports are disabled")
	}
	if err := errors.ValidatePath(s.File); err != nil {
		return err
	}
	records, err := io.ImportJSON(filepath.Join(r.baseDir, s.File))
	if err != nil {
		return err
	}
	return g.Import(records)
}
