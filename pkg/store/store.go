// Package store persists named commit graphs.
//
// The CLI runs against the in-memory store (graphs come from files), the
// server against MongoDB. Both backends speak the serialization format from
// pkg/graph, so a graph imported by one can be read by the other.
package store

import (
	"context"

	"github.com/mhollstein/revset/pkg/graph"
)

// Store is the persistence contract for named graphs. Names are validated
// on write; reads of unknown names return a NOT_FOUND_GRAPH error.
type Store interface {
	// Put stores a graph under name, replacing any previous version.
	Put(ctx context.Context, name string, g graph.Graph) error

	// Get retrieves a graph by name.
	Get(ctx context.Context, name string) (graph.Graph, error)

	// List returns the stored graph names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a graph. Deleting an unknown name returns
	// NOT_FOUND_GRAPH.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
