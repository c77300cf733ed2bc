package sink

import (
	"testing"

	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// sampleGraph builds master with two commits and a develop branch merged
// back with a tag on the merge. HEAD stays on develop.
func sampleGraph(t *testing.T) *history.Graph {
	t.Helper()
	g := history.New()
	steps := []func() error{
		func() error { _, err := g.Branch("master", history.BranchOptions{}); return err },
		func() error { _, err := g.Commit("", history.CommitOptions{Subject: "one"}); return err },
		func() error { _, err := g.Commit("", history.CommitOptions{Subject: "two"}); return err },
		func() error { _, err := g.Branch("develop", history.BranchOptions{}); return err },
		func() error { _, err := g.Commit("", history.CommitOptions{Subject: "feature <b>"}); return err },
		func() error {
			_, err := g.Merge("develop", "master", history.MergeOptions{Tag: "v1.0"})
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return g
}

func sample(t *testing.T, preset string, opts *template.Options) *render.Data {
	t.Helper()
	return render.Build(sampleGraph(t), template.Resolve(preset, opts))
}
