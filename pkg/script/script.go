package script

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Supported script formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Script is a decoded operation script.
type Script struct {
	Template string             `json:"template,omitempty" yaml:"template,omitempty"`
	Options  *template.Options  `json:"options,omitempty" yaml:"options,omitempty"`
	Author   *history.Signature `json:"author,omitempty" yaml:"author,omitempty"`
	Steps    []Step             `json:"steps" yaml:"steps"`
}

// Step is one operation. Exactly one field is set.
type Step struct {
	Branch   *BranchStep `json:"branch,omitempty" yaml:"branch,omitempty"`
	Commit   *CommitStep `json:"commit,omitempty" yaml:"commit,omitempty"`
	Merge    *MergeStep  `json:"merge,omitempty" yaml:"merge,omitempty"`
	Tag      *TagStep    `json:"tag,omitempty" yaml:"tag,omitempty"`
	Checkout *string     `json:"checkout,omitempty" yaml:"checkout,omitempty"`
	Delete   *string     `json:"delete,omitempty" yaml:"delete,omitempty"`
	Import   *ImportStep `json:"import,omitempty" yaml:"import,omitempty"`
	Clear    bool        `json:"clear,omitempty" yaml:"clear,omitempty"`
}

// Kind names the operation a step holds, or "" when it holds none or
// several.
func (s Step) Kind() string {
	var kinds []string
	if s.Branch != nil {
		kinds = append(kinds, "branch")
	}
	if s.Commit != nil {
		kinds = append(kinds, "commit")
	}
	if s.Merge != nil {
		kinds = append(kinds, "merge")
	}
	if s.Tag != nil {
		kinds = append(kinds, "tag")
	}
	if s.Checkout != nil {
		kinds = append(kinds, "checkout")
	}
	if s.Delete != nil {
		kinds = append(kinds, "delete")
	}
	if s.Import != nil {
		kinds = append(kinds, "import")
	}
	if s.Clear {
		kinds = append(kinds, "clear")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Validate checks that every step holds exactly one operation.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if step.Kind() == "" {
			return errors.New(errors.ErrCodeInvalidScript, "step %d must hold exactly one operation", i+1)
		}
	}
	return nil
}

// Decode strictly decodes a script document.
func Decode(r io.Reader, format string) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script")
	}

	var s Script
	switch format {
	case FormatYAML, "yml":
		if err := decodeYAML(data, &s); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode yaml script")
		}
	case FormatJSON:
		if err := decodeJSON(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode json script")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported script format %q", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeBytes decodes a script, sniffing JSON by its leading brace.
func DecodeBytes(data []byte) (*Script, error) {
	format := FormatYAML
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		format = FormatJSON
	}
	return Decode(bytes.NewReader(data), format)
}

// Load decodes a script file, choosing the format by extension.
func Load(path string) (*Script, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported script file %q (want .yaml or .json)", path)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open script %s", path)
	}
	defer f.Close()
	return Decode(f, format)
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
