package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/template"
)

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

// sample builds master with two commits, a develop branch merged back and
// a tag on the merge.
func sample(t *testing.T) *history.Graph {
	t.Helper()
	g := history.New(history.WithAuthor(history.Signature{Name: "Ada", Email: "ada@example.com"}))
	branch, commit := must[*history.Branch](t), must[*history.Commit](t)
	branch(g.Branch("master", history.BranchOptions{}))
	commit(g.Commit("", history.CommitOptions{Subject: "one"}))
	commit(g.Commit("", history.CommitOptions{Subject: "two"}))
	branch(g.Branch("develop", history.BranchOptions{}))
	commit(g.Commit("", history.CommitOptions{Subject: "feature"}))
	commit(g.Merge("develop", "master", history.MergeOptions{Tag: "v1.0"}))
	return g
}

func TestTagOnHeadUsesCommitPosition(t *testing.T) {
	g := history.New()
	must[*history.Branch](t)(g.Branch("master", history.BranchOptions{}))
	must[*history.Commit](t)(g.Commit("", history.CommitOptions{Subject: "one"}))
	second := must[*history.Commit](t)(g.Commit("", history.CommitOptions{Subject: "two"}))
	must[*history.Tag](t)(g.Tag("v1", history.TagOptions{}))
	must[*history.Tag](t)(g.Tag("v2", history.TagOptions{Color: "red"}))

	tpl := template.Default()
	d := Build(g, tpl)
	c, ok := d.Commit(second.Hash)
	if !ok {
		t.Fatal("second commit missing from render data")
	}
	if len(d.Tags) != 2 {
		t.Fatalf("len(Tags) = %d, want 2", len(d.Tags))
	}

	v1, v2 := d.Tags[0], d.Tags[1]
	if v1.X != c.X || v1.Y != c.Y {
		t.Errorf("tag at (%v,%v), want commit (%v,%v)", v1.X, v1.Y, c.X, c.Y)
	}
	if v1.Color != tpl.Tag.Color || v1.BgColor != tpl.Tag.BgColor || v1.Font != tpl.Tag.Font {
		t.Errorf("tag style = %q %q %q, want template defaults", v1.Color, v1.BgColor, v1.Font)
	}
	if v2.Color != "red" || v2.BgColor != tpl.Tag.BgColor {
		t.Errorf("overridden tag style = %q %q", v2.Color, v2.BgColor)
	}
	if v1.AnchorX != d.CommitMessagesX || v2.AnchorX <= v1.AnchorX+v1.Width-1 {
		t.Errorf("anchors = %v, %v; want side by side from %v", v1.AnchorX, v2.AnchorX, d.CommitMessagesX)
	}
	if c.MessageX <= v2.AnchorX {
		t.Errorf("message x %v overlaps tags ending after %v", c.MessageX, v2.AnchorX)
	}
}

func TestUnknownTemplateFallsBackToDefault(t *testing.T) {
	g := sample(t)
	got, _ := json.Marshal(Build(g, template.Resolve("no-such-preset", nil)))
	want, _ := json.Marshal(Build(g, template.Resolve(template.DefaultPreset, nil)))
	if !bytes.Equal(got, want) {
		t.Error("unknown preset did not render like the default preset")
	}
}

func TestCompactHidesMessages(t *testing.T) {
	g := sample(t)
	normal := Build(g, template.Resolve("metro", nil))
	compact := Build(g, template.Resolve("metro", &template.Options{Mode: template.Ptr(template.Compact)}))

	for i := range normal.Commits {
		n, c := normal.Commits[i], compact.Commits[i]
		if !n.Display {
			t.Errorf("normal commit %d not displayed", i)
		}
		if c.Display {
			t.Errorf("compact commit %d displayed", i)
		}
		if n.X != c.X || n.Column != c.Column || n.Color != c.Color {
			t.Errorf("commit %d lane differs: normal %v/%d, compact %v/%d", i, n.X, n.Column, c.X, c.Column)
		}
	}
}

func TestReplayIsByteIdentical(t *testing.T) {
	tpl := template.Resolve("blackarrow", nil)
	first, err := json.Marshal(Build(sample(t), tpl))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Build(sample(t), tpl))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("replaying the same operations produced different render data")
	}
}

func TestMessageFormatting(t *testing.T) {
	g := sample(t)
	tests := []struct {
		name   string
		opts   *template.Options
		format func(c Commit) string
	}{
		{"all", nil, func(c Commit) string { return c.HashAbbrev + " " + c.Subject + " - Ada <ada@example.com>" }},
		{"no hash", &template.Options{Commit: &template.CommitOptions{Message: &template.MessageOptions{DisplayHash: template.Ptr(false)}}},
			func(c Commit) string { return c.Subject + " - Ada <ada@example.com>" }},
		{"subject only", &template.Options{Commit: &template.CommitOptions{Message: &template.MessageOptions{
			DisplayHash: template.Ptr(false), DisplayAuthor: template.Ptr(false)}}},
			func(c Commit) string { return c.Subject }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Build(g, template.Resolve("metro", tt.opts))
			for _, c := range d.Commits {
				if want := tt.format(c); c.Message != want {
					t.Errorf("Message = %q, want %q", c.Message, want)
				}
			}
		})
	}
}

func TestColors(t *testing.T) {
	g := history.New()
	must[*history.Branch](t)(g.Branch("master", history.BranchOptions{}))
	must[*history.Commit](t)(g.Commit("", history.CommitOptions{}))
	must[*history.Branch](t)(g.Branch("pinned", history.BranchOptions{Color: "purple"}))
	must[*history.Commit](t)(g.Commit("", history.CommitOptions{DotColor: "black"}))
	must[*history.Commit](t)(g.Commit("master", history.CommitOptions{Color: "orange"}))

	tpl := template.Default()
	d := Build(g, tpl)

	if c := d.Commits[0]; c.Color != tpl.Colors[0] || c.Dot.Color != tpl.Colors[0] {
		t.Errorf("master commit color = %q/%q, want %q", c.Color, c.Dot.Color, tpl.Colors[0])
	}
	if c := d.Commits[1]; c.Color != "purple" || c.Dot.Color != "black" {
		t.Errorf("pinned commit color = %q/%q, want purple/black", c.Color, c.Dot.Color)
	}
	if c := d.Commits[2]; c.Color != "orange" {
		t.Errorf("overridden commit color = %q, want orange", c.Color)
	}
	for _, b := range d.Branches {
		if b.Name == "pinned" && b.Color != "purple" {
			t.Errorf("pinned lane color = %q", b.Color)
		}
	}
}

func TestBranchPaths(t *testing.T) {
	d := Build(sample(t), template.Default())
	if len(d.Branches) != 2 {
		t.Fatalf("len(Branches) = %d, want 2", len(d.Branches))
	}
	dev := d.Branches[1]
	if dev.Name != "develop" || !dev.Fork || dev.State != "active" {
		t.Errorf("develop path = %+v", dev)
	}
	if dev.Offset != d.Template.Branch.Spacing {
		t.Errorf("develop offset = %v, want %v", dev.Offset, d.Template.Branch.Spacing)
	}
	if len(d.Links) != 4 {
		t.Errorf("len(Links) = %d, want 4", len(d.Links))
	}
}

func TestEmptyGraph(t *testing.T) {
	d := Build(history.New(), template.Default())
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"commits":[]`, `"branches":[]`, `"links":[]`, `"tags":[]`} {
		if !bytes.Contains(out, []byte(key)) {
			t.Errorf("empty render data lacks %s: %s", key, out)
		}
	}
}

type recorder struct{ lines []string }

func (r *recorder) Commit(hash string, refs []string, subject string, left, right, msg int) error {
	r.lines = append(r.lines, fmt.Sprintf("%d|%d|%d %s %v", left, right, msg, subject, refs))
	return nil
}

func (r *recorder) OpenBranch() error {
	r.lines = append(r.lines, "open")
	return nil
}

func TestWalk(t *testing.T) {
	g := sample(t)
	d := Build(g, template.Default())
	var r recorder
	if err := Walk(d, &r); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"0|1|2 one []",
		"0|1|2 two []",
		"open",
		"1|0|2 feature [HEAD -> develop]",
		"0|1|2 Merge branch 'develop' into master [master tag: v1.0]",
	}
	if !slices.Equal(r.lines, want) {
		t.Errorf("Walk lines:\n got %q\nwant %q", r.lines, want)
	}

	compact := Build(g, template.Resolve("metro", &template.Options{Mode: template.Ptr(template.Compact)}))
	r = recorder{}
	if err := Walk(compact, &r); err != nil {
		t.Fatal(err)
	}
	if r.lines[0] != "0|1|2  []" {
		t.Errorf("compact line = %q, want no subject", r.lines[0])
	}
}
