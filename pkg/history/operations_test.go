package history

import (
	"errors"
	"reflect"
	"testing"

	cgerrors "github.com/matzehuels/commitgraph/pkg/errors"
)

func mustBranch(t *testing.T, g *Graph, name string, opts BranchOptions) *Branch {
	t.Helper()
	b, err := g.Branch(name, opts)
	if err != nil {
		t.Fatalf("Branch(%q) error = %v", name, err)
	}
	return b
}

func mustCommit(t *testing.T, g *Graph, branch, subject string) *Commit {
	t.Helper()
	c, err := g.Commit(branch, CommitOptions{Subject: subject})
	if err != nil {
		t.Fatalf("Commit(%q, %q) error = %v", branch, subject, err)
	}
	return c
}

func TestMergeCreatesTwoParentCommit(t *testing.T) {
	g := New()
	master := mustBranch(t, g, "master", BranchOptions{})
	mustCommit(t, g, "", "one")
	second := mustCommit(t, g, "", "two")
	develop := mustBranch(t, g, "develop", BranchOptions{})
	feature := mustCommit(t, g, "", "feature")

	merge, err := g.Merge("develop", "master", MergeOptions{})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := master.Tip(); got != merge.Hash {
		t.Errorf("master tip = %s, want merge commit %s", got, merge.Hash)
	}
	if want := []string{second.Hash, feature.Hash}; !reflect.DeepEqual(merge.Parents, want) {
		t.Errorf("merge parents = %v, want %v", merge.Parents, want)
	}
	if got := master.Len(); got != 3 {
		t.Errorf("len(master.commits) = %d, want 3", got)
	}
	if merge.Branch != "master" {
		t.Errorf("merge.Branch = %q, want master", merge.Branch)
	}
	if develop.State != Active {
		t.Errorf("develop.State = %v, want active", develop.State)
	}
	if merge.Subject != "Merge branch 'develop' into master" {
		t.Errorf("merge.Subject = %q", merge.Subject)
	}
}

func TestBranchForkPoint(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	root := mustCommit(t, g, "", "root")
	if root.Parents != nil {
		t.Errorf("root parents = %v, want none", root.Parents)
	}

	dev := mustBranch(t, g, "dev", BranchOptions{})
	if dev.ParentCommit != root.Hash {
		t.Errorf("dev.ParentCommit = %s, want %s", dev.ParentCommit, root.Hash)
	}
	if g.Head() != dev {
		t.Errorf("Head() = %v, want dev", g.Head().Name)
	}

	// An empty branch forks from its parent's fork point.
	empty := mustBranch(t, g, "empty", BranchOptions{From: "dev"})
	if empty.ParentCommit != root.Hash {
		t.Errorf("empty.ParentCommit = %s, want %s", empty.ParentCommit, root.Hash)
	}

	first := mustCommit(t, g, "dev", "first on dev")
	if want := []string{root.Hash}; !reflect.DeepEqual(first.Parents, want) {
		t.Errorf("first dev commit parents = %v, want %v", first.Parents, want)
	}

	fromHash := mustBranch(t, g, "hotfix", BranchOptions{From: root.HashAbbrev})
	if fromHash.ParentCommit != root.Hash {
		t.Errorf("hotfix.ParentCommit = %s, want %s", fromHash.ParentCommit, root.Hash)
	}
}

func TestCommitDoesNotMoveHead(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	mustBranch(t, g, "dev", BranchOptions{})
	if err := g.Checkout("main"); err != nil {
		t.Fatal(err)
	}
	mustCommit(t, g, "dev", "b")
	if g.Head().Name != "main" {
		t.Errorf("Head() = %s, want main", g.Head().Name)
	}
}

func TestOperationErrors(t *testing.T) {
	setup := func(t *testing.T) *Graph {
		g := New()
		mustBranch(t, g, "master", BranchOptions{})
		mustCommit(t, g, "", "one")
		mustBranch(t, g, "develop", BranchOptions{})
		mustBranch(t, g, "empty", BranchOptions{})
		if err := g.Checkout("master"); err != nil {
			t.Fatal(err)
		}
		if err := g.DeleteBranch("develop"); err != nil {
			t.Fatal(err)
		}
		if _, err := g.Tag("v1", TagOptions{}); err != nil {
			t.Fatal(err)
		}
		return g
	}

	tests := []struct {
		name string
		op   func(g *Graph) error
		want error
		code cgerrors.Code
	}{
		{
			name: "duplicate branch",
			op:   func(g *Graph) error { _, err := g.Branch("master", BranchOptions{}); return err },
			want: ErrDuplicateBranch,
			code: cgerrors.ErrCodeDuplicateBranch,
		},
		{
			name: "reuse deleted name",
			op:   func(g *Graph) error { _, err := g.Branch("develop", BranchOptions{}); return err },
			want: ErrDuplicateBranch,
			code: cgerrors.ErrCodeDuplicateBranch,
		},
		{
			name: "invalid branch name",
			op:   func(g *Graph) error { _, err := g.Branch("bad name", BranchOptions{}); return err },
			want: ErrInvalidRefName,
			code: cgerrors.ErrCodeInvalidRefName,
		},
		{
			name: "fork from deleted",
			op:   func(g *Graph) error { _, err := g.Branch("x", BranchOptions{From: "develop"}); return err },
			want: ErrInactiveBranch,
			code: cgerrors.ErrCodeInactiveBranch,
		},
		{
			name: "fork from unknown",
			op:   func(g *Graph) error { _, err := g.Branch("x", BranchOptions{From: "nope"}); return err },
			want: ErrUnknownBranch,
			code: cgerrors.ErrCodeBranchNotFound,
		},
		{
			name: "commit on deleted",
			op:   func(g *Graph) error { _, err := g.Commit("develop", CommitOptions{}); return err },
			want: ErrInactiveBranch,
			code: cgerrors.ErrCodeInactiveBranch,
		},
		{
			name: "commit on unknown",
			op:   func(g *Graph) error { _, err := g.Commit("nope", CommitOptions{}); return err },
			want: ErrUnknownBranch,
			code: cgerrors.ErrCodeBranchNotFound,
		},
		{
			name: "self merge",
			op:   func(g *Graph) error { _, err := g.Merge("master", "master", MergeOptions{}); return err },
			want: ErrSelfMerge,
			code: cgerrors.ErrCodeSelfMerge,
		},
		{
			name: "self merge via HEAD",
			op:   func(g *Graph) error { _, err := g.Merge("master", "", MergeOptions{}); return err },
			want: ErrSelfMerge,
			code: cgerrors.ErrCodeSelfMerge,
		},
		{
			name: "nothing to merge",
			op:   func(g *Graph) error { _, err := g.Merge("empty", "master", MergeOptions{}); return err },
			want: ErrNothingToMerge,
			code: cgerrors.ErrCodeNothingToMerge,
		},
		{
			name: "merge deleted source",
			op:   func(g *Graph) error { _, err := g.Merge("develop", "master", MergeOptions{}); return err },
			want: ErrInactiveBranch,
			code: cgerrors.ErrCodeInactiveBranch,
		},
		{
			name: "checkout deleted",
			op:   func(g *Graph) error { return g.Checkout("develop") },
			want: ErrInactiveBranch,
			code: cgerrors.ErrCodeInactiveBranch,
		},
		{
			name: "checkout unknown",
			op:   func(g *Graph) error { return g.Checkout("nope") },
			want: ErrUnknownBranch,
			code: cgerrors.ErrCodeBranchNotFound,
		},
		{
			name: "duplicate tag",
			op:   func(g *Graph) error { _, err := g.Tag("v1", TagOptions{}); return err },
			want: ErrDuplicateTag,
			code: cgerrors.ErrCodeDuplicateTag,
		},
		{
			name: "duplicate tag on commit",
			op:   func(g *Graph) error { _, err := g.Commit("", CommitOptions{Tag: "v1"}); return err },
			want: ErrDuplicateTag,
			code: cgerrors.ErrCodeDuplicateTag,
		},
		{
			name: "tag empty branch",
			op:   func(g *Graph) error { _, err := g.Tag("v2", TagOptions{Branch: "empty"}); return err },
			want: ErrEmptyBranch,
			code: cgerrors.ErrCodeEmptyBranch,
		},
		{
			name: "tag unknown commit",
			op:   func(g *Graph) error { _, err := g.Tag("v2", TagOptions{Commit: "deadbeef"}); return err },
			want: ErrUnknownCommit,
			code: cgerrors.ErrCodeCommitNotFound,
		},
		{
			name: "delete head",
			op:   func(g *Graph) error { return g.DeleteBranch("master") },
			want: ErrDeleteHead,
			code: cgerrors.ErrCodeDeleteHead,
		},
		{
			name: "delete twice",
			op:   func(g *Graph) error { return g.DeleteBranch("develop") },
			want: ErrInactiveBranch,
			code: cgerrors.ErrCodeInactiveBranch,
		},
		{
			name: "duplicate explicit hash",
			op: func(g *Graph) error {
				_, err := g.Commit("", CommitOptions{Hash: g.Head().Tip()})
				return err
			},
			want: ErrDuplicateCommit,
			code: cgerrors.ErrCodeDuplicateCommit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := setup(t)
			before := snapshot(g)

			err := tt.op(g)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := cgerrors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v", got, tt.code)
			}
			if after := snapshot(g); !reflect.DeepEqual(before, after) {
				t.Errorf("graph mutated by failed operation:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestNoHead(t *testing.T) {
	g := New()
	if _, err := g.Commit("", CommitOptions{}); !errors.Is(err, ErrNoHead) {
		t.Errorf("Commit() on empty graph error = %v, want %v", err, ErrNoHead)
	}
	if _, err := g.Tag("v1", TagOptions{}); !errors.Is(err, ErrNoHead) {
		t.Errorf("Tag() on empty graph error = %v, want %v", err, ErrNoHead)
	}
}

func TestInactiveAfterLaterDeletion(t *testing.T) {
	g := New()
	mustBranch(t, g, "master", BranchOptions{})
	mustCommit(t, g, "", "one")
	mustBranch(t, g, "feature", BranchOptions{})
	mustCommit(t, g, "", "two")
	if _, err := g.Merge("feature", "master", MergeOptions{}); err != nil {
		t.Fatal(err)
	}
	// Still active after a plain merge.
	mustCommit(t, g, "feature", "three")

	if err := g.Checkout("master"); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteBranch("feature"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Commit("feature", CommitOptions{}); !errors.Is(err, ErrInactiveBranch) {
		t.Errorf("Commit() after deletion error = %v, want %v", err, ErrInactiveBranch)
	}
}

func TestMergeCloseSource(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	feature := mustBranch(t, g, "feature", BranchOptions{})
	mustCommit(t, g, "", "b")

	if _, err := g.Merge("feature", "main", MergeOptions{CloseSource: true}); err != nil {
		t.Fatal(err)
	}
	if feature.State != Merged {
		t.Errorf("feature.State = %v, want merged", feature.State)
	}
	if g.Head().Name != "main" {
		t.Errorf("Head() = %s, want main after closing the checked-out source", g.Head().Name)
	}
	if _, err := g.Commit("feature", CommitOptions{}); !errors.Is(err, ErrInactiveBranch) {
		t.Errorf("Commit() on merged branch error = %v, want %v", err, ErrInactiveBranch)
	}
	next := mustBranch(t, g, "next", BranchOptions{})
	if next.Column != feature.Column {
		t.Errorf("next.Column = %d, want freed column %d", next.Column, feature.Column)
	}
}

func TestMergeNoMergeCommit(t *testing.T) {
	g := New()
	main := mustBranch(t, g, "main", BranchOptions{})
	base := mustCommit(t, g, "", "a")
	mustBranch(t, g, "feature", BranchOptions{})
	b := mustCommit(t, g, "", "b")
	c := mustCommit(t, g, "", "c")

	got, err := g.Merge("feature", "main", MergeOptions{NoMergeCommit: true})
	if err != nil {
		t.Fatal(err)
	}
	if got.Hash != c.Hash {
		t.Errorf("Merge() = %s, want source tip %s", got.Hash, c.Hash)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (no new commit)", g.Len())
	}
	if want := []string{base.Hash, b.Hash, c.Hash}; !reflect.DeepEqual(main.Commits(), want) {
		t.Errorf("main.Commits() = %v, want %v", main.Commits(), want)
	}
	if want := []string{"feature", "main"}; !reflect.DeepEqual(b.Branches(), want) {
		t.Errorf("b.Branches() = %v, want %v", b.Branches(), want)
	}

	next := mustCommit(t, g, "main", "d")
	if want := []string{c.Hash}; !reflect.DeepEqual(next.Parents, want) {
		t.Errorf("commit after fast-forward parents = %v, want %v", next.Parents, want)
	}

	again, err := g.Merge("feature", "main", MergeOptions{})
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if want := []string{next.Hash, c.Hash}; !reflect.DeepEqual(again.Parents, want) {
		t.Errorf("second merge parents = %v, want %v", again.Parents, want)
	}
}

func TestMergeAgainAfterMergeCommit(t *testing.T) {
	g := New()
	mustBranch(t, g, "master", BranchOptions{})
	mustCommit(t, g, "", "m1")
	mustBranch(t, g, "develop", BranchOptions{})
	d1 := mustCommit(t, g, "", "d1")
	if err := g.Checkout("master"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Merge("develop", "master", MergeOptions{}); err != nil {
		t.Fatal(err)
	}
	m2 := mustCommit(t, g, "master", "m2")

	got, err := g.Merge("develop", "master", MergeOptions{})
	if err != nil {
		t.Fatalf("re-merge: %v", err)
	}
	if want := []string{m2.Hash, d1.Hash}; !reflect.DeepEqual(got.Parents, want) {
		t.Errorf("re-merge parents = %v, want %v", got.Parents, want)
	}
	if !got.IsMerge() {
		t.Error("re-merge did not create a merge commit")
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", g.Len())
	}
}

func TestMergeTipIsTargetHead(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	mustBranch(t, g, "feature", BranchOptions{})
	b := mustCommit(t, g, "", "b")
	if _, err := g.Merge("feature", "main", MergeOptions{NoMergeCommit: true}); err != nil {
		t.Fatal(err)
	}

	got, err := g.Merge("feature", "main", MergeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{b.Hash}; !reflect.DeepEqual(got.Parents, want) {
		t.Errorf("parents = %v, want %v", got.Parents, want)
	}
}

func TestMergeNoMergeCommitDiverged(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	mustBranch(t, g, "feature", BranchOptions{})
	src := mustCommit(t, g, "", "b")
	dst := mustCommit(t, g, "main", "c")

	got, err := g.Merge("feature", "main", MergeOptions{NoMergeCommit: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{dst.Hash, src.Hash}; !reflect.DeepEqual(got.Parents, want) {
		t.Errorf("diverged merge parents = %v, want %v", got.Parents, want)
	}
}

func TestDeleteBranchRemovesLabel(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	mustBranch(t, g, "tmp", BranchOptions{})
	c := mustCommit(t, g, "", "b")
	if want := []string{"tmp"}; !reflect.DeepEqual(c.Branches(), want) {
		t.Errorf("Branches() = %v, want %v", c.Branches(), want)
	}
	if err := g.Checkout("main"); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteBranch("tmp"); err != nil {
		t.Fatal(err)
	}
	if got := c.Branches(); len(got) != 0 {
		t.Errorf("Branches() after delete = %v, want none", got)
	}
	if g.CommitByHash(c.Hash) != c {
		t.Error("commit of deleted branch no longer navigable")
	}
}

func TestDeleteThenBranchReusesColumn(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	a := mustBranch(t, g, "a", BranchOptions{})
	mustBranch(t, g, "b", BranchOptions{})
	if err := g.Checkout("main"); err != nil {
		t.Fatal(err)
	}
	if err := g.DeleteBranch("a"); err != nil {
		t.Fatal(err)
	}
	c := mustBranch(t, g, "c", BranchOptions{})
	if c.Column != a.Column {
		t.Errorf("c.Column = %d, want reused %d", c.Column, a.Column)
	}
	d := mustBranch(t, g, "d", BranchOptions{})
	if d.Column != 3 {
		t.Errorf("d.Column = %d, want 3", d.Column)
	}
}

func TestTagTargets(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	first := mustCommit(t, g, "", "a")
	second := mustCommit(t, g, "", "b")

	head, err := g.Tag("head", TagOptions{Color: "#f00"})
	if err != nil {
		t.Fatal(err)
	}
	if head.Commit != second.Hash || head.Color != "#f00" {
		t.Errorf("head tag = %+v", head)
	}
	old, err := g.Tag("old", TagOptions{Commit: first.Hash})
	if err != nil {
		t.Fatal(err)
	}
	if old.Commit != first.Hash {
		t.Errorf("old tag commit = %s, want %s", old.Commit, first.Hash)
	}
	if _, err := g.Commit("", CommitOptions{Subject: "c", Tag: "v3"}); err != nil {
		t.Fatal(err)
	}
	if got := len(g.Tags()); got != 3 {
		t.Errorf("len(Tags()) = %d, want 3", got)
	}
	if g.TagByName("v3") == nil {
		t.Error("TagByName(v3) = nil")
	}
}

func TestRefs(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	c := mustCommit(t, g, "", "a")
	mustBranch(t, g, "dev", BranchOptions{})
	if _, err := g.Tag("v1", TagOptions{Branch: "main"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"HEAD -> dev", "main", "tag: v1"}
	if got := g.Refs(c.Hash); !reflect.DeepEqual(got, want) {
		t.Errorf("Refs() = %v, want %v", got, want)
	}
}

func TestClear(t *testing.T) {
	g := New()
	mustBranch(t, g, "main", BranchOptions{})
	mustCommit(t, g, "", "a")
	g.Clear()

	if g.Head() != nil || g.Len() != 0 || len(g.Branches()) != 0 || len(g.Tags()) != 0 {
		t.Fatalf("Clear() left state behind")
	}
	b := mustBranch(t, g, "main", BranchOptions{})
	if b.Column != 0 || b.ParentCommit != "" {
		t.Errorf("branch after Clear = %+v", b)
	}
}

func TestDeterministicHashes(t *testing.T) {
	build := func() []string {
		g := New(WithAuthor(Signature{Name: "Ada", Email: "ada@example.com"}))
		mustBranch(t, g, "main", BranchOptions{})
		mustCommit(t, g, "", "a")
		mustBranch(t, g, "dev", BranchOptions{})
		mustCommit(t, g, "", "b")
		if _, err := g.Merge("dev", "main", MergeOptions{}); err != nil {
			t.Fatal(err)
		}
		var hashes []string
		for _, c := range g.Commits() {
			if len(c.Hash) != 32 || c.HashAbbrev != c.Hash[:7] {
				t.Errorf("malformed hash %q / %q", c.Hash, c.HashAbbrev)
			}
			hashes = append(hashes, c.Hash)
		}
		return hashes
	}
	first, second := build(), build()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("hashes differ between replays:\n%v\n%v", first, second)
	}
}

type graphSnapshot struct {
	Head     string
	Clock    int
	Branches []branchSnapshot
	Commits  []string
	Tags     []Tag
}

type branchSnapshot struct {
	Name    string
	Column  int
	State   BranchState
	Commits []string
}

func snapshot(g *Graph) graphSnapshot {
	var s graphSnapshot
	if h := g.Head(); h != nil {
		s.Head = h.Name
	}
	s.Clock = g.Clock()
	for _, b := range g.Branches() {
		s.Branches = append(s.Branches, branchSnapshot{b.Name, b.Column, b.State, b.Commits()})
	}
	for _, c := range g.Commits() {
		s.Commits = append(s.Commits, c.Hash)
	}
	for _, t := range g.Tags() {
		s.Tags = append(s.Tags, *t)
	}
	return s
}
