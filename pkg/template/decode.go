package template

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/commitgraph/pkg/errors"
)

// Supported override file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatFromPath infers an override format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported template file %q (want .yaml, .toml or .json)", path)
}

// DecodeOptions strictly decodes an override document. Unknown keys and
// unknown enumerated values are rejected with ErrCodeInvalidTemplate. An
// empty document decodes to an empty Options.
func DecodeOptions(r io.Reader, format string) (*Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read template options")
	}

	var o Options
	switch format {
	case FormatYAML, "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode yaml template options")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&o)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode toml template options")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "unknown template keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			break
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode json template options")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported template format %q", format)
	}

	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// LoadOptionsFile decodes an override file, choosing the format by extension.
func LoadOptionsFile(path string) (*Options, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open template file %s", path)
	}
	defer f.Close()
	return DecodeOptions(f, format)
}

func (o *Options) validate() error {
	if o.Orientation != nil {
		switch *o.Orientation {
		case Vertical, Horizontal:
		default:
			return errors.New(errors.ErrCodeInvalidTemplate, "unknown orientation %q", *o.Orientation)
		}
	}
	if o.Mode != nil {
		switch *o.Mode {
		case Normal, Compact:
		default:
			return errors.New(errors.ErrCodeInvalidTemplate, "unknown mode %q", *o.Mode)
		}
	}
	if o.Branch != nil && o.Branch.MergeStyle != nil {
		switch *o.Branch.MergeStyle {
		case Bezier, Straight:
		default:
			return errors.New(errors.ErrCodeInvalidTemplate, "unknown merge style %q", *o.Branch.MergeStyle)
		}
	}
	return nil
}
