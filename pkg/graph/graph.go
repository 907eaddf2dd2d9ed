// Package graph serializes commit graphs to and from a stable JSON format.
//
// The same Graph type carries bson tags so stored graphs keep their shape in
// document storage without a second schema.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mhollstein/revset/pkg/namedag"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a built graph to JSON bytes.
// Vertices are emitted parents-first for deterministic output.
func Marshal(d *namedag.NameDag) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d *namedag.NameDag, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(d, f)
}

// Write writes a graph as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(d *namedag.NameDag, w io.Writer) error {
	return writeTo(d, w)
}

// ReadFile reads a JSON file and returns the built graph.
// Returns validation errors for malformed input or cyclic parent relations.
func ReadFile(path string) (*namedag.NameDag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON graph from an io.Reader and builds it.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*namedag.NameDag, error) {
	return readFrom(r)
}

// Unmarshal deserializes JSON bytes to the raw serialization format
// without building the graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(d *namedag.NameDag, w io.Writer) error {
	out, err := FromDag(d)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*namedag.NameDag, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToDag(data)
}
