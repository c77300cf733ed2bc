package history

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

// gitLog is a newest-first history as git log prints it:
//
//	*   m (HEAD -> main, tag: v1)
//	|\
//	| * f2 (feature)
//	| * f1
//	* | c2
//	|/
//	*   c1
//
// plus an orphaned hotfix merged earlier whose ref was deleted.
func gitLog() []Record {
	return []Record{
		{Hash: "m", Parents: []string{"c2", "f2"}, Subject: "merge", Refs: []string{"HEAD -> main, tag: v1"}},
		{Hash: "f2", Parents: []string{"f1"}, Subject: "f2", Refs: []string{"feature"}},
		{Hash: "c2", Parents: []string{"hm"}, Subject: "c2"},
		{Hash: "hm", Parents: []string{"c1", "h1"}, Subject: "merge hotfix"},
		{Hash: "f1", Parents: []string{"c1"}, Subject: "f1"},
		{Hash: "h1", Parents: []string{"c1"}, Subject: "h1"},
		{Hash: "c1", Subject: "c1"},
	}
}

func TestImportNewestFirst(t *testing.T) {
	g := New()
	if err := g.Import(gitLog()); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	var order []string
	for _, c := range g.Commits() {
		order = append(order, c.Hash)
	}
	if want := []string{"c1", "h1", "f1", "hm", "c2", "f2", "m"}; !reflect.DeepEqual(order, want) {
		t.Errorf("commit order = %v, want %v", order, want)
	}

	if h := g.Head(); h == nil || h.Name != "main" {
		t.Fatalf("Head() = %v, want main", h)
	}

	main := g.BranchByName("main")
	if want := []string{"c1", "hm", "c2", "m"}; !reflect.DeepEqual(main.Commits(), want) {
		t.Errorf("main commits = %v, want %v", main.Commits(), want)
	}
	if main.ParentCommit != "" || main.Column != 0 {
		t.Errorf("main = parent %q column %d, want root at column 0", main.ParentCommit, main.Column)
	}

	feature := g.BranchByName("feature")
	if want := []string{"f1", "f2"}; !reflect.DeepEqual(feature.Commits(), want) {
		t.Errorf("feature commits = %v, want %v", feature.Commits(), want)
	}
	if feature.ParentCommit != "c1" || feature.State != Active {
		t.Errorf("feature = parent %q state %v", feature.ParentCommit, feature.State)
	}

	hotfix := g.BranchByName(SyntheticPrefix + "h1")
	if hotfix == nil {
		t.Fatalf("no synthetic branch for h1; branches: %v", branchNames(g.Branches()))
	}
	if hotfix.State != Deleted || hotfix.ParentCommit != "c1" {
		t.Errorf("hotfix = state %v parent %q", hotfix.State, hotfix.ParentCommit)
	}
	// hotfix is created first (at h1), feature next (at f1) while hotfix is
	// still referenced by hm.
	if hotfix.Column != 1 || feature.Column != 2 {
		t.Errorf("columns hotfix=%d feature=%d, want 1 and 2", hotfix.Column, feature.Column)
	}

	if tag := g.TagByName("v1"); tag == nil || tag.Commit != "m" {
		t.Errorf("tag v1 = %+v, want on m", tag)
	}
	if c := g.CommitByHash("f2"); c.Branch != "feature" {
		t.Errorf("f2 primary branch = %q", c.Branch)
	}
}

func TestImportOrderIndependent(t *testing.T) {
	newest := gitLog()
	oldest := slices.Clone(newest)
	slices.Reverse(oldest)

	a, b := New(), New()
	if err := a.Import(newest); err != nil {
		t.Fatal(err)
	}
	if err := b.Import(oldest); err != nil {
		t.Fatal(err)
	}
	if sa, sb := snapshot(a), snapshot(b); !reflect.DeepEqual(sa, sb) {
		t.Errorf("import differs by record order:\n%+v\n%+v", sa, sb)
	}
}

func TestImportReleasesSyntheticColumns(t *testing.T) {
	// x is merged into main at m1 and its ref is gone; y starts after m1
	// and can reuse x's column.
	records := []Record{
		{Hash: "a"},
		{Hash: "x1", Parents: []string{"a"}},
		{Hash: "m1", Parents: []string{"a", "x1"}},
		{Hash: "y1", Parents: []string{"m1"}, Refs: []string{"y"}},
		{Hash: "b", Parents: []string{"m1"}, Refs: []string{"HEAD -> main"}},
	}
	g := New()
	if err := g.Import(records); err != nil {
		t.Fatal(err)
	}
	x := g.BranchByName(SyntheticPrefix + "x1")
	y := g.BranchByName("y")
	if x == nil || y == nil {
		t.Fatalf("branches = %v", branchNames(g.Branches()))
	}
	if x.Column != 1 || y.Column != 1 {
		t.Errorf("columns x=%d y=%d, want both 1", x.Column, y.Column)
	}
	if x.RetiredAt == 0 || x.RetiredAt >= y.CreatedAt {
		t.Errorf("x retired at %d, y created at %d", x.RetiredAt, y.CreatedAt)
	}

	// New branches after import see only live columns.
	z, err := g.Branch("z", BranchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if z.Column != 2 {
		t.Errorf("z.Column = %d, want 2", z.Column)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
	}{
		{"dangling parent", []Record{{Hash: "a", Parents: []string{"zz"}}}},
		{"self parent", []Record{{Hash: "a", Parents: []string{"a"}}}},
		{"duplicate hash", []Record{{Hash: "a"}, {Hash: "a"}}},
		{"empty hash", []Record{{Hash: ""}}},
		{"mixed order", []Record{
			{Hash: "a"},
			{Hash: "b", Parents: []string{"a"}},
			{Hash: "c", Parents: []string{"d"}},
			{Hash: "d"},
		}},
		{"cycle", []Record{
			{Hash: "a", Parents: []string{"b"}},
			{Hash: "b", Parents: []string{"a"}},
		}},
		{"duplicate parent", []Record{{Hash: "a"}, {Hash: "b", Parents: []string{"a", "a"}}}},
		{"branch twice", []Record{{Hash: "a", Refs: []string{"main"}}, {Hash: "b", Parents: []string{"a"}, Refs: []string{"main"}}}},
		{"tag twice", []Record{{Hash: "a", Refs: []string{"tag: v1"}}, {Hash: "b", Parents: []string{"a"}, Refs: []string{"tag: v1"}}}},
		{"empty HEAD target", []Record{{Hash: "a", Refs: []string{"HEAD -> "}}}},
		{"empty HEAD target in list", []Record{{Hash: "a", Refs: []string{"HEAD -> , main"}}}},
		{"invalid branch name", []Record{{Hash: "a", Refs: []string{"bad..name"}}}},
		{"branch named HEAD", []Record{{Hash: "a", Refs: []string{"HEAD -> HEAD"}}}},
		{"empty tag", []Record{{Hash: "a", Refs: []string{"tag: "}}}},
		{"tag with space", []Record{{Hash: "a", Refs: []string{"tag: x y"}}}},
		{"invalid tag name", []Record{{Hash: "a", Refs: []string{"tag: v1~2"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if _, err := g.Branch("keep", BranchOptions{}); err != nil {
				t.Fatal(err)
			}
			before := snapshot(g)
			err := g.Import(tt.records)
			if !errors.Is(err, ErrInvalidImport) {
				t.Fatalf("Import() error = %v, want %v", err, ErrInvalidImport)
			}
			if after := snapshot(g); !reflect.DeepEqual(before, after) {
				t.Errorf("failed import mutated graph")
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	g := New(WithAuthor(Signature{Name: "Ada", Email: "ada@example.com"}))
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	mustBranch(t, g, "dev", BranchOptions{})
	mustCommit(t, g, "", "b")
	mustBranch(t, g, "tmp", BranchOptions{})
	mustCommit(t, g, "", "c")
	if _, err := g.Merge("tmp", "dev", MergeOptions{}); err != nil {
		t.Fatal(err)
	}
	if err := g.Checkout("dev"); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteBranch("tmp"); err != nil {
		t.Fatal(err)
	}
	mustCommit(t, g, "main", "d")
	if _, err := g.Tag("v1", TagOptions{Branch: "main"}); err != nil {
		t.Fatal(err)
	}

	records := g.Export()
	h := New()
	if err := h.Import(records); err != nil {
		t.Fatalf("Import(Export()) error = %v", err)
	}

	for i, c := range h.Commits() {
		if c.Hash != records[i].Hash || !slices.Equal(c.Parents, records[i].Parents) {
			t.Errorf("commit %d = %s %v, want %s %v", i, c.Hash, c.Parents, records[i].Hash, records[i].Parents)
		}
	}
	for _, name := range []string{"main", "dev"} {
		if got, want := h.BranchByName(name).Head(), g.BranchByName(name).Head(); got != want {
			t.Errorf("%s head = %s, want %s", name, got, want)
		}
	}
	if h.Head().Name != "dev" {
		t.Errorf("Head() = %s, want dev", h.Head().Name)
	}
	if !reflect.DeepEqual(h.Export(), records) {
		t.Errorf("second export differs from first")
	}
}

func branchNames(bs []*Branch) []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}
