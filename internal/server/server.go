// Package server exposes the query engine over HTTP.
//
// Graphs are stored by name and queried with set expressions. Evaluated
// results are cached keyed on graph content and the canonical expression,
// so repeated queries against an unchanged graph skip evaluation entirely.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mhollstein/revset/pkg/cache"
	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/graph"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/observability"
	"github.com/mhollstein/revset/pkg/query"
	"github.com/mhollstein/revset/pkg/store"
)

const queryResultTTL = time.Hour

// Server wires the store, cache and logger behind the HTTP API.
type Server struct {
	store store.Store
	cache cache.Cache
	keyer cache.Keyer
	log   *log.Logger
}

// New creates a server. A nil cache disables result caching, a nil keyer
// selects the default key scheme.
func New(st store.Store, c cache.Cache, k cache.Keyer, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: st, cache: c, keyer: k, log: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/graphs", func(r chi.Router) {
		r.Get("/", s.handleListGraphs)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", s.handlePutGraph)
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteGraph)
			r.Post("/query", s.handleQuery)
		})
	})
	return r
}

// ListenAndServe runs the server at addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph"))
		return
	}

	// Reject graphs that do not build before persisting anything.
	d, err := graph.ToDag(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, g); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":     name,
		"vertices": d.VertexCount(),
		"edges":    d.EdgeCount(),
	})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryRequest is the body of POST /v1/graphs/{name}/query.
type queryRequest struct {
	Expr string `json:"expr"`
}

// queryResponse carries an evaluated result. Vertices are ordered most
// recent first.
type queryResponse struct {
	Expr     string   `json:"expr"` // canonical form
	Count    uint64   `json:"count"`
	Vertices []string `json:"vertices"`
	Cached   bool     `json:"cached,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	expr, err := query.Parse(req.Expr)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	canonical := expr.String()

	g, err := s.store.Get(ctx, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Cache key covers graph content, so imports invalidate implicitly.
	raw, err := json.Marshal(g)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "hash graph"))
		return
	}
	key := s.keyer.QueryKey(cache.Hash(raw), canonical)

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "query")
		var resp queryResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.Cached = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	} else if err != nil {
		// Cache trouble degrades to evaluation, never to a failed request.
		s.log.Warn("cache get failed", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "query")

	start := time.Now()
	observability.Query().OnEvalStart(ctx, name, canonical)
	resp, err := evaluate(ctx, name, g, expr, canonical)
	observability.Query().OnEvalComplete(ctx, name, canonical, resp.Count, time.Since(start), err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, data, queryResultTTL); err != nil {
			s.log.Warn("cache set failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "query", len(data))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// evaluate builds the graph and runs the parsed expression against it.
func evaluate(ctx context.Context, name string, g graph.Graph, expr query.Expr, canonical string) (queryResponse, error) {
	buildStart := time.Now()
	observability.Query().OnGraphBuildStart(ctx, name, len(g.Vertices))
	d, err := graph.ToDag(g)
	observability.Query().OnGraphBuildComplete(ctx, name, time.Since(buildStart), err)
	if err != nil {
		return queryResponse{}, err
	}
	set, err := expr.Eval(d)
	if err != nil {
		return queryResponse{}, err
	}
	names, err := nameset.Names(set)
	if err != nil {
		return queryResponse{}, err
	}
	resp := queryResponse{Expr: canonical, Count: uint64(len(names)), Vertices: make([]string, len(names))}
	for i, n := range names {
		resp.Vertices[i] = n.Key()
	}
	return resp, nil
}
