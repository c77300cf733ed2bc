package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/history"
)

// WriteJSON encodes the graph's history as a JSON array of records, oldest
// first. The output can be re-imported with [ReadJSON].
func WriteJSON(g *history.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Export()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ExportJSON writes the graph's history to a JSON file at path.
func ExportJSON(g *history.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
