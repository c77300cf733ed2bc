package history

import "slices"

// Record is one commit of an exported or imported history.
//
// Refs use the labels printed by git log --decorate: "HEAD -> name" for
// the checked-out branch, "tag: name" for tags, a bare "HEAD" for a
// detached HEAD and plain names for other branches. A single entry may hold
// several comma-separated labels.
type Record struct {
	Hash          string     `json:"hash" yaml:"hash"`
	HashAbbrev    string     `json:"hash_abbrev,omitempty" yaml:"hash_abbrev,omitempty"`
	Tree          string     `json:"tree,omitempty" yaml:"tree,omitempty"`
	TreeAbbrev    string     `json:"tree_abbrev,omitempty" yaml:"tree_abbrev,omitempty"`
	Parents       []string   `json:"parents" yaml:"parents"`
	ParentsAbbrev []string   `json:"parents_abbrev,omitempty" yaml:"parents_abbrev,omitempty"`
	Author        Signature  `json:"author" yaml:"author"`
	Committer     Signature  `json:"committer" yaml:"committer"`
	Subject       string     `json:"subject" yaml:"subject"`
	Body          string     `json:"body,omitempty" yaml:"body,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Refs          []string   `json:"refs,omitempty" yaml:"refs,omitempty"`
	Stats         []FileStat `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Export returns the history oldest first with the refs currently pointing
// at each commit. Retired branches are not exported; [Graph.Import] restores
// their commits on synthetic branches.
func (g *Graph) Export() []Record {
	out := make([]Record, len(g.commits))
	for i, c := range g.commits {
		out[i] = Record{
			Hash:          c.Hash,
			HashAbbrev:    c.HashAbbrev,
			Tree:          c.Tree,
			TreeAbbrev:    c.TreeAbbrev,
			Parents:       slices.Clone(c.Parents),
			ParentsAbbrev: slices.Clone(c.ParentsAbbrev),
			Author:        c.Author,
			Committer:     c.Committer,
			Subject:       c.Subject,
			Body:          c.Body,
			Notes:         c.Notes,
			Refs:          g.Refs(c.Hash),
			Stats:         slices.Clone(c.Stats),
		}
		if out[i].Parents == nil {
			out[i].Parents = []string{}
		}
	}
	return out
}
