package history

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/commitgraph/pkg/errors"
)

// SyntheticPrefix names branches invented by [Graph.Import] for commits no
// ref reaches along first parents.
const SyntheticPrefix = "detached-"

// Import replaces the graph contents with a loaded history. It either
// succeeds completely or leaves the graph untouched.
//
// Records may be ordered oldest first or newest first (as git log prints
// them); the order is detected from the parent references. Every parent
// must be another record, and all references must point the same way.
//
// Branches are derived from refs. Each branch ref claims the commits along
// its first-parent chain that no earlier branch claimed, starting with the
// HEAD branch and then newest tips first. Remaining commits are grouped
// the same way onto deleted branches named "detached-<abbrev>", which
// release their column after the last commit referencing them.
func (g *Graph) Import(records []Record) error {
	ng := New(WithAuthor(g.author))
	if err := ng.load(records); err != nil {
		return err
	}
	*g = *ng
	for _, c := range g.commits {
		c.g = g
	}
	return nil
}

type refTip struct {
	name  string
	index int
	order int
}

func (g *Graph) load(records []Record) error {
	ordered, err := orderRecords(records)
	if err != nil {
		return err
	}

	for i, r := range ordered {
		c := &Commit{
			Hash:          r.Hash,
			HashAbbrev:    cmp.Or(r.HashAbbrev, Abbrev(r.Hash)),
			Tree:          r.Tree,
			TreeAbbrev:    cmp.Or(r.TreeAbbrev, Abbrev(r.Tree)),
			Parents:       slices.Clone(r.Parents),
			ParentsAbbrev: slices.Clone(r.ParentsAbbrev),
			Subject:       r.Subject,
			Body:          r.Body,
			Notes:         r.Notes,
			Author:        r.Author,
			Committer:     r.Committer,
			Refs:          slices.Clone(r.Refs),
			Stats:         slices.Clone(r.Stats),
			Seq:           i,
			g:             g,
		}
		if len(c.Parents) == 0 {
			c.Parents = nil
		}
		if c.ParentsAbbrev == nil {
			c.ParentsAbbrev = abbrevAll(c.Parents)
		}
		g.commits = append(g.commits, c)
		g.byHash[c.Hash] = c
	}

	tips, headName, err := g.parseRefs()
	if err != nil {
		return err
	}

	slices.SortStableFunc(tips, func(a, b refTip) int {
		switch {
		case a.name == headName && b.name != headName:
			return -1
		case b.name == headName && a.name != headName:
			return 1
		}
		if c := cmp.Compare(b.index, a.index); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	claimed := make([]*Branch, len(g.commits))
	var claimOrder []*Branch
	for _, tip := range tips {
		b := g.claim(tip.name, tip.index, claimed)
		claimOrder = append(claimOrder, b)
	}
	for i := len(g.commits) - 1; i >= 0; i-- {
		if claimed[i] != nil {
			continue
		}
		b := g.claim(g.syntheticName(g.commits[i].HashAbbrev), i, claimed)
		b.State = Deleted
		claimOrder = append(claimOrder, b)
	}

	g.allocate(claimOrder, claimed)

	if headName != "" {
		g.head = g.byName[headName]
	} else if len(tips) > 0 {
		g.head = g.byName[tips[0].name]
	}
	g.clock = len(g.commits)
	return nil
}

// orderRecords validates references and returns the records oldest first.
func orderRecords(records []Record) ([]Record, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		if r.Hash == "" {
			return nil, fmt.Errorf("record %d has no hash: %w", i, ErrInvalidImport)
		}
		if _, dup := index[r.Hash]; dup {
			return nil, fmt.Errorf("duplicate hash %s: %w", Abbrev(r.Hash), ErrInvalidImport)
		}
		index[r.Hash] = i
	}

	var backward, forward int
	for i, r := range records {
		seen := make(map[string]bool, len(r.Parents))
		for _, p := range r.Parents {
			if seen[p] {
				return nil, fmt.Errorf("commit %s lists parent %s twice: %w", Abbrev(r.Hash), Abbrev(p), ErrInvalidImport)
			}
			seen[p] = true
			j, ok := index[p]
			switch {
			case !ok:
				return nil, fmt.Errorf("commit %s: unknown parent %s: %w", Abbrev(r.Hash), Abbrev(p), ErrInvalidImport)
			case j == i:
				return nil, fmt.Errorf("commit %s is its own parent: %w", Abbrev(r.Hash), ErrInvalidImport)
			case j < i:
				backward++
			default:
				forward++
			}
		}
	}
	if backward > 0 && forward > 0 {
		return nil, fmt.Errorf("parent references point both ways (forward reference or cycle): %w", ErrInvalidImport)
	}

	out := slices.Clone(records)
	if forward > 0 {
		slices.Reverse(out)
	}
	return out, nil
}

// parseRefs collects branch tips and tags from the commit refs.
func (g *Graph) parseRefs() ([]refTip, string, error) {
	var (
		tips     []refTip
		headName string
		seen     = map[string]bool{}
	)
	for i, c := range g.commits {
		detached := false
		var local []string
		for _, entry := range c.Refs {
			for _, ref := range strings.Split(entry, ",") {
				ref = strings.TrimSpace(ref)
				switch {
				case ref == "":
				case ref == "HEAD":
					detached = true
				case strings.HasPrefix(ref, "tag:"):
					name := strings.TrimSpace(strings.TrimPrefix(ref, "tag:"))
					if err := importRefName("tag", name); err != nil {
						return nil, "", err
					}
					if _, dup := g.tagIndex[name]; dup {
						return nil, "", fmt.Errorf("tag %q: %w", name, ErrInvalidImport)
					}
					g.addTag(&Tag{Name: name, Commit: c.Hash})
				default:
					name, isHead := strings.CutPrefix(ref, "HEAD ->")
					name = strings.TrimSpace(name)
					if err := importRefName("branch", name); err != nil {
						return nil, "", err
					}
					if seen[name] {
						return nil, "", fmt.Errorf("branch %q points at two commits: %w", name, ErrInvalidImport)
					}
					seen[name] = true
					if isHead {
						headName = name
					}
					local = append(local, name)
					tips = append(tips, refTip{name: name, index: i, order: len(tips)})
				}
			}
		}
		if detached && headName == "" && len(local) > 0 {
			headName = local[0]
		}
	}
	return tips, headName, nil
}

// importRefName applies the ref rules of [Graph.Branch] and [Graph.Tag] to
// an imported name.
func importRefName(kind, name string) error {
	if err := errors.ValidateRefName(name); err != nil {
		return fmt.Errorf("%s %q: %w (%s)", kind, name, ErrInvalidImport, errors.UserMessage(err))
	}
	return nil
}

// claim creates a branch owning the unclaimed first-parent chain ending at
// the commit with the given index.
func (g *Graph) claim(name string, tip int, claimed []*Branch) *Branch {
	b := &Branch{Name: name, member: make(map[string]struct{})}
	var own []int
	i := tip
	for claimed[i] == nil {
		claimed[i] = b
		own = append(own, i)
		c := g.commits[i]
		if len(c.Parents) == 0 {
			i = -1
			break
		}
		i = g.byHash[c.Parents[0]].Seq
	}
	if i >= 0 {
		b.ParentCommit = g.commits[i].Hash
	}
	slices.Reverse(own)
	for _, j := range own {
		c := g.commits[j]
		c.Branch = name
		b.push(c.Hash)
	}
	g.byName[name] = b
	return b
}

func (g *Graph) syntheticName(abbrev string) string {
	name := SyntheticPrefix + abbrev
	for n := 2; ; n++ {
		if _, taken := g.byName[name]; !taken {
			return name
		}
		name = SyntheticPrefix + abbrev + "-" + strconv.Itoa(n)
	}
}

// allocate replays synthesized lifecycle events in commit order to assign
// columns. A branch is created at its first commit (or at its fork point
// when it owns none); a deleted branch is retired after the last commit
// that is its own or has a parent on it.
func (g *Graph) allocate(claimOrder []*Branch, claimed []*Branch) {
	n := len(g.commits)
	created := make(map[*Branch]int, len(claimOrder))
	retired := make(map[*Branch]int)
	for _, b := range claimOrder {
		if b.Len() > 0 {
			created[b] = g.byHash[b.commits[0]].Seq
		} else {
			created[b] = g.byHash[b.ParentCommit].Seq
		}
		if b.State != Active {
			retired[b] = g.byHash[b.Tip()].Seq
		}
	}
	for i, c := range g.commits {
		for _, p := range c.Parents {
			owner := claimed[g.byHash[p].Seq]
			if last, ok := retired[owner]; ok && i > last {
				retired[owner] = i
			}
		}
	}

	byCreation := slices.Clone(claimOrder)
	slices.SortStableFunc(byCreation, func(a, b *Branch) int {
		return cmp.Compare(created[a], created[b])
	})

	next := 0
	for i := 0; i < n; i++ {
		for next < len(byCreation) && created[byCreation[next]] == i {
			b := byCreation[next]
			b.Column = g.cols.acquire()
			b.CreatedAt = i + 1
			g.branches = append(g.branches, b)
			next++
		}
		for _, b := range byCreation[:next] {
			if last, ok := retired[b]; ok && last == i {
				g.cols.release(b.Column)
				b.RetiredAt = i + 1
			}
		}
	}
}
