package history

import (
	"fmt"
	"slices"

	"github.com/matzehuels/commitgraph/pkg/errors"
)

// BranchOptions configures [Graph.Branch].
type BranchOptions struct {
	// From names the fork point: a branch (its tip, or its own fork point
	// while empty) or a commit hash. Empty means HEAD.
	From string
	// Color overrides the lane color.
	Color string
}

// CommitOptions configures [Graph.Commit].
type CommitOptions struct {
	Subject   string
	Body      string
	Notes     string
	Author    *Signature // nil uses the graph author
	Committer *Signature // nil uses the author
	Hash      string     // explicit hash; empty derives a deterministic one
	Tree      string
	Stats     []FileStat
	Tag       string // creates a tag on the new commit
	Color     string
	DotColor  string
}

// MergeOptions configures [Graph.Merge].
type MergeOptions struct {
	// NoMergeCommit fast-forwards the target when its head is an ancestor
	// of the source tip. Otherwise a merge commit is created anyway.
	NoMergeCommit bool
	// CloseSource retires the source branch to Merged after the merge.
	CloseSource bool

	Subject string // default "Merge branch '<source>' into <target>"
	Body    string
	Author  *Signature
	Hash    string
	Tag     string
	Color   string
}

// TagOptions configures [Graph.Tag]. At most one of Branch and Commit is
// used; Commit wins. Both empty tags HEAD's tip.
type TagOptions struct {
	Branch  string
	Commit  string
	Color   string
	BgColor string
	Font    string
}

// Branch creates an active branch and checks it out.
//
// The branch forks from opts.From, or from HEAD, or is a root branch when
// the graph has no HEAD. It takes the smallest free lane column.
func (g *Graph) Branch(name string, opts BranchOptions) (*Branch, error) {
	if err := errors.ValidateRefName(name); err != nil {
		return nil, fmt.Errorf("branch %q: %w (%s)", name, ErrInvalidRefName, errors.UserMessage(err))
	}
	if _, ok := g.byName[name]; ok {
		return nil, fmt.Errorf("branch %q: %w", name, ErrDuplicateBranch)
	}
	fork, err := g.forkPoint(opts.From)
	if err != nil {
		return nil, err
	}

	b := &Branch{
		Name:         name,
		ParentCommit: fork,
		Color:        opts.Color,
		Column:       g.cols.acquire(),
		CreatedAt:    g.tick(),
		member:       make(map[string]struct{}),
	}
	g.branches = append(g.branches, b)
	g.byName[name] = b
	g.head = b
	return b, nil
}

func (g *Graph) forkPoint(from string) (string, error) {
	if from == "" {
		if g.head == nil {
			return "", nil
		}
		return g.head.Head(), nil
	}
	if b, ok := g.byName[from]; ok {
		if !b.IsActive() {
			return "", fmt.Errorf("fork from %q: %w", from, ErrInactiveBranch)
		}
		return b.Head(), nil
	}
	if c := g.CommitByHash(from); c != nil {
		return c.Hash, nil
	}
	return "", fmt.Errorf("fork from %q: %w", from, ErrUnknownBranch)
}

// Commit appends a commit to the named branch, or to HEAD when branch is
// empty. Its parent is the branch tip, the fork point for the first commit
// of a forked branch, or nothing for the first commit of a root branch.
// HEAD does not move.
func (g *Graph) Commit(branch string, opts CommitOptions) (*Commit, error) {
	b, err := g.activeBranch(branch)
	if err != nil {
		return nil, err
	}
	var parents []string
	if h := b.Head(); h != "" {
		parents = []string{h}
	}
	c, err := g.newCommit(b, parents, opts)
	if err != nil {
		return nil, err
	}
	g.tick()
	return c, nil
}

// newCommit validates and appends a commit on b. It mutates nothing on error.
func (g *Graph) newCommit(b *Branch, parents []string, opts CommitOptions) (*Commit, error) {
	seq := len(g.commits)
	hash := opts.Hash
	if hash == "" {
		hash = commitHash(seq, b.Name, opts.Subject, parents)
	}
	if _, ok := g.byHash[hash]; ok {
		return nil, fmt.Errorf("commit %s: %w", Abbrev(hash), ErrDuplicateCommit)
	}
	if opts.Tag != "" {
		if err := g.checkTagName(opts.Tag); err != nil {
			return nil, err
		}
	}

	author := g.author
	if opts.Author != nil {
		author = *opts.Author
	}
	committer := author
	if opts.Committer != nil {
		committer = *opts.Committer
	}

	c := &Commit{
		Hash:          hash,
		HashAbbrev:    Abbrev(hash),
		Tree:          opts.Tree,
		TreeAbbrev:    Abbrev(opts.Tree),
		Parents:       parents,
		ParentsAbbrev: abbrevAll(parents),
		Branch:        b.Name,
		Subject:       opts.Subject,
		Body:          opts.Body,
		Notes:         opts.Notes,
		Author:        author,
		Committer:     committer,
		Stats:         slices.Clone(opts.Stats),
		Color:         opts.Color,
		DotColor:      opts.DotColor,
		Seq:           seq,
		g:             g,
	}
	g.commits = append(g.commits, c)
	g.byHash[hash] = c
	b.push(hash)
	if opts.Tag != "" {
		g.addTag(&Tag{Name: opts.Tag, Commit: hash})
	}
	return c, nil
}

// Merge integrates source into target (HEAD when target is empty).
//
// By default a commit is created on target whose parents are target's head
// and source's tip. With NoMergeCommit, a target whose head is an ancestor
// of the source tip is fast-forwarded instead and the source tip is
// returned. A source already contained in target still gets a merge commit.
// The source stays active unless CloseSource is set.
func (g *Graph) Merge(source, target string, opts MergeOptions) (*Commit, error) {
	src, err := g.branch(source)
	if err != nil {
		return nil, err
	}
	dst, err := g.branch(target)
	if err != nil {
		return nil, err
	}
	if src == dst {
		return nil, fmt.Errorf("merge %q: %w", src.Name, ErrSelfMerge)
	}
	for _, b := range []*Branch{dst, src} {
		if !b.IsActive() {
			return nil, fmt.Errorf("merge %q into %q: branch %q is %s: %w", src.Name, dst.Name, b.Name, b.State, ErrInactiveBranch)
		}
	}
	srcTip := src.Tip()
	if srcTip == "" {
		return nil, fmt.Errorf("merge %q into %q: source has no commits: %w", src.Name, dst.Name, ErrNothingToMerge)
	}
	dstHead := dst.Head()
	if opts.Tag != "" {
		if err := g.checkTagName(opts.Tag); err != nil {
			return nil, err
		}
	}

	var result *Commit
	if opts.NoMergeCommit && (dstHead == "" || g.isAncestor(dstHead, srcTip)) {
		for _, h := range g.between(dstHead, srcTip) {
			if !dst.Contains(h) {
				dst.push(h)
			}
		}
		result = g.byHash[srcTip]
		if opts.Tag != "" {
			g.addTag(&Tag{Name: opts.Tag, Commit: srcTip})
		}
	} else {
		parents := []string{srcTip}
		if dstHead != "" && dstHead != srcTip {
			parents = []string{dstHead, srcTip}
		}
		subject := opts.Subject
		if subject == "" {
			subject = fmt.Sprintf("Merge branch '%s' into %s", src.Name, dst.Name)
		}
		result, err = g.newCommit(dst, parents, CommitOptions{
			Subject: subject,
			Body:    opts.Body,
			Author:  opts.Author,
			Hash:    opts.Hash,
			Tag:     opts.Tag,
			Color:   opts.Color,
		})
		if err != nil {
			return nil, err
		}
	}
	g.tick()

	if opts.CloseSource {
		g.retire(src, Merged)
		if g.head == src {
			g.head = dst
		}
	}
	return result, nil
}

// between returns the commits reachable from tip but not from base, in
// issuance order.
func (g *Graph) between(base, tip string) []string {
	exclude := g.reachable(base)
	var out []*Commit
	for h := range g.reachable(tip) {
		if !exclude[h] {
			out = append(out, g.byHash[h])
		}
	}
	slices.SortFunc(out, func(a, b *Commit) int { return a.Seq - b.Seq })
	hashes := make([]string, len(out))
	for i, c := range out {
		hashes[i] = c.Hash
	}
	return hashes
}

func (g *Graph) reachable(from string) map[string]bool {
	seen := map[string]bool{}
	if from == "" {
		return seen
	}
	stack := []string{from}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[h] {
			continue
		}
		seen[h] = true
		if c := g.byHash[h]; c != nil {
			stack = append(stack, c.Parents...)
		}
	}
	return seen
}

// Checkout moves HEAD to an active branch.
func (g *Graph) Checkout(name string) error {
	if name == "" {
		return fmt.Errorf("checkout: %w", ErrUnknownBranch)
	}
	b, err := g.activeBranch(name)
	if err != nil {
		return err
	}
	g.head = b
	g.tick()
	return nil
}

// Tag labels a commit: opts.Commit, else the tip of opts.Branch, else the
// tip of HEAD.
func (g *Graph) Tag(name string, opts TagOptions) (*Tag, error) {
	if err := g.checkTagName(name); err != nil {
		return nil, err
	}

	var hash string
	if opts.Commit != "" {
		c := g.CommitByHash(opts.Commit)
		if c == nil {
			return nil, fmt.Errorf("tag %q: commit %q: %w", name, opts.Commit, ErrUnknownCommit)
		}
		hash = c.Hash
	} else {
		b, err := g.branch(opts.Branch)
		if err != nil {
			return nil, err
		}
		if hash = b.Tip(); hash == "" {
			return nil, fmt.Errorf("tag %q on branch %q: %w", name, b.Name, ErrEmptyBranch)
		}
	}

	t := &Tag{Name: name, Commit: hash, Color: opts.Color, BgColor: opts.BgColor, Font: opts.Font}
	g.addTag(t)
	g.tick()
	return t, nil
}

func (g *Graph) checkTagName(name string) error {
	if err := errors.ValidateRefName(name); err != nil {
		return fmt.Errorf("tag %q: %w (%s)", name, ErrInvalidRefName, errors.UserMessage(err))
	}
	if _, ok := g.tagIndex[name]; ok {
		return fmt.Errorf("tag %q: %w", name, ErrDuplicateTag)
	}
	return nil
}

func (g *Graph) addTag(t *Tag) {
	g.tags = append(g.tags, t)
	g.tagIndex[t.Name] = t
}

// DeleteBranch retires an active branch and frees its column. Its commits
// stay in the graph but no longer carry its label.
func (g *Graph) DeleteBranch(name string) error {
	if name == "" {
		return fmt.Errorf("delete: %w", ErrUnknownBranch)
	}
	b, err := g.branch(name)
	if err != nil {
		return err
	}
	if b == g.head {
		return fmt.Errorf("delete %q: %w", name, ErrDeleteHead)
	}
	if !b.IsActive() {
		return fmt.Errorf("delete %q: branch is %s: %w", name, b.State, ErrInactiveBranch)
	}
	g.retire(b, Deleted)
	return nil
}

func (g *Graph) retire(b *Branch, state BranchState) {
	b.State = state
	b.RetiredAt = g.tick()
	g.cols.release(b.Column)
}
