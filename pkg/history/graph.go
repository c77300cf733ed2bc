package history

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is the registry of branches, commits and tags.
//
// The zero value is not usable; create graphs with [New].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	author Signature

	branches []*Branch
	byName   map[string]*Branch
	commits  []*Commit
	byHash   map[string]*Commit
	tags     []*Tag
	tagIndex map[string]*Tag
	head     *Branch
	cols     columns
	clock    int
}

// Option configures a Graph.
type Option func(*Graph)

// WithAuthor sets the signature used for commits that carry none.
func WithAuthor(s Signature) Option {
	return func(g *Graph) { g.author = s }
}

// New creates an empty graph with no HEAD.
func New(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

func (g *Graph) reset() {
	g.branches = nil
	g.byName = make(map[string]*Branch)
	g.commits = nil
	g.byHash = make(map[string]*Commit)
	g.tags = nil
	g.tagIndex = make(map[string]*Tag)
	g.head = nil
	g.cols = columns{}
	g.clock = 0
}

// Clear resets the graph to empty. Branch names become available again and
// HEAD is undefined until the next [Graph.Branch].
func (g *Graph) Clear() {
	g.reset()
}

// Author returns the default commit signature.
func (g *Graph) Author() Signature { return g.author }

// Clock returns the logical clock, advanced by every successful mutation.
func (g *Graph) Clock() int { return g.clock }

// Len returns the number of commits.
func (g *Graph) Len() int { return len(g.commits) }

// Head returns the checked-out branch, or nil.
func (g *Graph) Head() *Branch { return g.head }

// BranchByName returns the named branch in any state, or nil.
func (g *Graph) BranchByName(name string) *Branch { return g.byName[name] }

// Branches returns every branch in creation order, retired ones included.
func (g *Graph) Branches() []*Branch { return slices.Clone(g.branches) }

// LiveBranches returns the active branches in creation order.
func (g *Graph) LiveBranches() []*Branch {
	var live []*Branch
	for _, b := range g.branches {
		if b.IsActive() {
			live = append(live, b)
		}
	}
	return live
}

// Commits returns every commit in issuance order.
func (g *Graph) Commits() []*Commit { return slices.Clone(g.commits) }

// CommitByHash returns the commit with the given full hash, or the only
// commit whose hash starts with the given prefix of at least four
// characters. It returns nil when no single commit matches.
func (g *Graph) CommitByHash(hash string) *Commit {
	if c, ok := g.byHash[hash]; ok {
		return c
	}
	if len(hash) < 4 {
		return nil
	}
	var found *Commit
	for _, c := range g.commits {
		if strings.HasPrefix(c.Hash, hash) {
			if found != nil {
				return nil
			}
			found = c
		}
	}
	return found
}

// Tags returns every tag in creation order.
func (g *Graph) Tags() []*Tag { return slices.Clone(g.tags) }

// TagByName returns the named tag, or nil.
func (g *Graph) TagByName(name string) *Tag { return g.tagIndex[name] }

// Refs returns the labels currently pointing at a commit: "HEAD -> name" for
// the checked-out branch, plain names for other active branches, then
// "tag: name" for tags.
func (g *Graph) Refs(hash string) []string {
	var refs []string
	if g.head != nil && g.head.Head() == hash {
		refs = append(refs, "HEAD -> "+g.head.Name)
	}
	for _, b := range g.branches {
		if b == g.head || !b.IsActive() || b.Head() != hash {
			continue
		}
		refs = append(refs, b.Name)
	}
	for _, t := range g.tags {
		if t.Commit == hash {
			refs = append(refs, "tag: "+t.Name)
		}
	}
	return refs
}

// branch resolves a receiver name; "" means HEAD.
func (g *Graph) branch(name string) (*Branch, error) {
	if name == "" {
		if g.head == nil {
			return nil, ErrNoHead
		}
		return g.head, nil
	}
	b, ok := g.byName[name]
	if !ok {
		return nil, fmt.Errorf("branch %q: %w", name, ErrUnknownBranch)
	}
	return b, nil
}

// activeBranch resolves a receiver name and requires it to be active.
func (g *Graph) activeBranch(name string) (*Branch, error) {
	b, err := g.branch(name)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, fmt.Errorf("branch %q is %s: %w", b.Name, b.State, ErrInactiveBranch)
	}
	return b, nil
}

// isAncestor reports whether anc is reachable from desc through parents.
// A commit is its own ancestor.
func (g *Graph) isAncestor(anc, desc string) bool {
	if anc == "" || desc == "" {
		return false
	}
	seen := map[string]bool{}
	stack := []string{desc}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == anc {
			return true
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		if c := g.byHash[h]; c != nil {
			stack = append(stack, c.Parents...)
		}
	}
	return false
}

func (g *Graph) tick() int {
	g.clock++
	return g.clock
}
