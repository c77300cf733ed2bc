package script

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/commitgraph/pkg/history"
)

// BranchStep creates a branch and checks it out. The scalar form is the
// branch name.
type BranchStep struct {
	Name  string `json:"name" yaml:"name"`
	From  string `json:"from,omitempty" yaml:"from,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// CommitStep adds a commit. The scalar form is the subject.
type CommitStep struct {
	Branch   string             `json:"branch,omitempty" yaml:"branch,omitempty"`
	Subject  string             `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body     string             `json:"body,omitempty" yaml:"body,omitempty"`
	Notes    string             `json:"notes,omitempty" yaml:"notes,omitempty"`
	Author   *history.Signature `json:"author,omitempty" yaml:"author,omitempty"`
	Hash     string             `json:"hash,omitempty" yaml:"hash,omitempty"`
	Tree     string             `json:"tree,omitempty" yaml:"tree,omitempty"`
	Tag      string             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Color    string             `json:"color,omitempty" yaml:"color,omitempty"`
	DotColor string             `json:"dotColor,omitempty" yaml:"dotColor,omitempty"`
	Stats    []history.FileStat `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// MergeStep merges Source into Target (HEAD when empty). The scalar form is
// the source branch.
type MergeStep struct {
	Source      string             `json:"source" yaml:"source"`
	Target      string             `json:"target,omitempty" yaml:"target,omitempty"`
	FastForward bool               `json:"fastForward,omitempty" yaml:"fastForward,omitempty"`
	Close       bool               `json:"close,omitempty" yaml:"close,omitempty"`
	Subject     string             `json:"subject,omitempty" yaml:"subject,omitempty"`
	Body        string             `json:"body,omitempty" yaml:"body,omitempty"`
	Author      *history.Signature `json:"author,omitempty" yaml:"author,omitempty"`
	Hash        string             `json:"hash,omitempty" yaml:"hash,omitempty"`
	Tag         string             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Color       string             `json:"color,omitempty" yaml:"color,omitempty"`
}

// TagStep labels a commit. The scalar form is the tag name on HEAD's tip.
type TagStep struct {
	Name    string `json:"name" yaml:"name"`
	Branch  string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
	BgColor string `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
	Font    string `json:"font,omitempty" yaml:"font,omitempty"`
}

// ImportStep replaces the graph with an imported history, either inline
// records or a JSON file. The scalar form is the file path.
type ImportStep struct {
	File    string           `json:"file,omitempty" yaml:"file,omitempty"`
	Records []history.Record `json:"records,omitempty" yaml:"records,omitempty"`
}

func (s *BranchStep) UnmarshalYAML(n *yaml.Node) error {
	type plain BranchStep
	return unmarshalYAML(n, &s.Name, (*plain)(s))
}

func (s *BranchStep) UnmarshalJSON(data []byte) error {
	type plain BranchStep
	return unmarshalJSON(data, &s.Name, (*plain)(s))
}

func (s *CommitStep) UnmarshalYAML(n *yaml.Node) error {
	type plain CommitStep
	return unmarshalYAML(n, &s.Subject, (*plain)(s))
}

func (s *CommitStep) UnmarshalJSON(data []byte) error {
	type plain CommitStep
	return unmarshalJSON(data, &s.Subject, (*plain)(s))
}

func (s *MergeStep) UnmarshalYAML(n *yaml.Node) error {
	type plain MergeStep
	return unmarshalYAML(n, &s.Source, (*plain)(s))
}

func (s *MergeStep) UnmarshalJSON(data []byte) error {
	type plain MergeStep
	return unmarshalJSON(data, &s.Source, (*plain)(s))
}

func (s *TagStep) UnmarshalYAML(n *yaml.Node) error {
	type plain TagStep
	return unmarshalYAML(n, &s.Name, (*plain)(s))
}

func (s *TagStep) UnmarshalJSON(data []byte) error {
	type plain TagStep
	return unmarshalJSON(data, &s.Name, (*plain)(s))
}

func (s *ImportStep) UnmarshalYAML(n *yaml.Node) error {
	type plain ImportStep
	return unmarshalYAML(n, &s.File, (*plain)(s))
}

func (s *ImportStep) UnmarshalJSON(data []byte) error {
	type plain ImportStep
	return unmarshalJSON(data, &s.File, (*plain)(s))
}

// unmarshalYAML decodes a scalar into short or a mapping into full. Node
// decoding ignores the outer decoder's KnownFields, so mappings go through
// a strict decoder again.
func unmarshalYAML(n *yaml.Node, short *string, full any) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(short)
	}
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	return decodeYAML(data, full)
}

func unmarshalJSON(data []byte, short *string, full any) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, short)
	}
	return decodeJSON(data, full)
}
