package history

import (
	"slices"
	"time"
)

// Signature identifies an author or committer.
type Signature struct {
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// String formats the signature as "Name <email>".
func (s Signature) String() string {
	switch {
	case s.Name == "" && s.Email == "":
		return ""
	case s.Email == "":
		return s.Name
	case s.Name == "":
		return "<" + s.Email + ">"
	}
	return s.Name + " <" + s.Email + ">"
}

// FileStat is a per-file change summary.
type FileStat struct {
	Additions int    `json:"additions" yaml:"additions"`
	Deletions int    `json:"deletions" yaml:"deletions"`
	File      string `json:"file" yaml:"file"`
}

// Commit is an immutable node of the graph. Geometry is not stored here;
// it is computed by the layout package.
type Commit struct {
	Hash          string
	HashAbbrev    string
	Tree          string
	TreeAbbrev    string
	Parents       []string // ordered; the first parent is on the same lane or the fork point
	ParentsAbbrev []string
	Branch        string // primary branch, decides the lane
	Subject       string
	Body          string
	Notes         string
	Author        Signature
	Committer     Signature
	Refs          []string // explicit refs carried over from an import
	Stats         []FileStat
	Color         string // dot and lane color override
	DotColor      string // dot fill override
	Seq           int    // issuance index

	g *Graph
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool { return len(c.Parents) > 1 }

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// Branches returns the sorted names of the non-deleted branches containing
// the commit. A commit belongs to the branch it was created on and to every
// branch fast-forwarded over it.
func (c *Commit) Branches() []string {
	if c.g == nil {
		return nil
	}
	var names []string
	for _, b := range c.g.branches {
		if b.State == Deleted {
			continue
		}
		if _, ok := b.member[c.Hash]; ok {
			names = append(names, b.Name)
		}
	}
	slices.Sort(names)
	return names
}

// BranchState is the lifecycle state of a branch.
type BranchState int

const (
	// Active branches accept commits, merges and checkouts.
	Active BranchState = iota
	// Merged branches were retired by a closing merge.
	Merged
	// Deleted branches were retired explicitly.
	Deleted
)

func (s BranchState) String() string {
	switch s {
	case Active:
		return "active"
	case Merged:
		return "merged"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s BranchState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Branch is a named line of development holding a lane column.
type Branch struct {
	Name         string
	ParentCommit string // fork point hash, empty for a root branch
	Column       int
	State        BranchState
	Color        string // lane color override
	CreatedAt    int    // clock tick of creation
	RetiredAt    int    // clock tick of retirement, 0 while active

	commits []string // own commits plus fast-forwarded ones, oldest first
	member  map[string]struct{}
}

// Commits returns the hashes on the branch, oldest first.
func (b *Branch) Commits() []string {
	return slices.Clone(b.commits)
}

// Len returns the number of commits on the branch.
func (b *Branch) Len() int { return len(b.commits) }

// Tip returns the hash of the most recent commit, or "" for an empty branch.
func (b *Branch) Tip() string {
	if len(b.commits) == 0 {
		return ""
	}
	return b.commits[len(b.commits)-1]
}

// Head returns the commit a new commit on the branch would take as parent:
// the tip, or the fork point when the branch is still empty.
func (b *Branch) Head() string {
	if tip := b.Tip(); tip != "" {
		return tip
	}
	return b.ParentCommit
}

// IsActive reports whether the branch accepts new commits.
func (b *Branch) IsActive() bool { return b.State == Active }

// Contains reports whether the hash is on the branch.
func (b *Branch) Contains(hash string) bool {
	_, ok := b.member[hash]
	return ok
}

func (b *Branch) push(hash string) {
	b.commits = append(b.commits, hash)
	b.member[hash] = struct{}{}
}

// Tag is a named label attached to a commit. Empty style fields fall back
// to the template's tag defaults.
type Tag struct {
	Name    string
	Commit  string
	Color   string
	BgColor string
	Font    string
}
