package sink

import (
	"encoding/json"

	"github.com/matzehuels/commitgraph/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
}

// WithJSONCompact drops indentation from the output.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// RenderJSON exports the render data as a JSON document, pretty-printed
// unless [WithJSONCompact] is given.
//
// The encoding is deterministic: the same data always yields the same bytes,
// which makes the output suitable as a cache value and for snapshot
// comparisons.
func RenderJSON(d *render.Data, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.compact {
		return json.Marshal(d)
	}
	return json.MarshalIndent(d, "", "  ")
}
