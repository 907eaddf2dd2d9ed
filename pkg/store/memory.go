package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/graph"
)

// MemoryStore keeps graphs in process memory. It backs tests and
// single-process CLI usage; nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]graph.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]graph.Graph)}
}

// Put stores a graph under name, replacing any previous version.
func (s *MemoryStore) Put(ctx context.Context, name string, g graph.Graph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[name] = g
	return nil
}

// Get retrieves a graph by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[name]
	if !ok {
		return graph.Graph{}, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	return g, nil
}

// List returns the stored graph names in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a graph.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[name]; !ok {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	delete(s.graphs, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
