package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/history"
)

type document struct {
	Commits []history.Record `json:"commits"`
}

// ReadJSON decodes commit records from r. The input is either a JSON array
// of records or an object holding the array under "commits".
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]history.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read records")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty history document")
	}

	var records []history.Record
	if data[0] == '{' {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
		}
		records = doc.Commits
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return records, nil
}

// ImportJSON reads commit records from a JSON file.
func ImportJSON(path string) ([]history.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// LoadGraph reads a JSON history file into a new graph.
func LoadGraph(path string, opts ...history.Option) (*history.Graph, error) {
	records, err := ImportJSON(path)
	if err != nil {
		return nil, err
	}
	g := history.New(opts...)
	if err := g.Import(records); err != nil {
		return nil, err
	}
	return g, nil
}
