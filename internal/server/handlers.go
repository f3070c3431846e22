package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontograph/pkg/buildinfo"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/pipeline"
	"github.com/matzehuels/ontograph/pkg/schema"
	"github.com/matzehuels/ontograph/pkg/tree"
)

// ----------------------------------------------------------------------------
// Response bodies
// ----------------------------------------------------------------------------

type treeResponse struct {
	availability
	Roots        []*tree.Node `json:"roots"`
	Conflicts    int          `json:"conflicts"`
	Unclassified int          `json:"unclassified"`
}

type graphResponse struct {
	availability
	graph.Graph
}

type layoutResponse struct {
	availability
	Layout graph.Layout `json:"layout"`
}

type schemaResponse struct {
	availability
	Entity string         `json:"entity,omitempty"`
	Schema *schema.Schema `json:"schema"`
	Layout graph.Layout   `json:"layout"`
}

// ----------------------------------------------------------------------------
// GET /healthz
// ----------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// ----------------------------------------------------------------------------
// GET /api/tree
// ----------------------------------------------------------------------------

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	attach, err := boolParam(r, "attach_entities")
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := s.runner.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := m.Tree(tree.Options{AttachEntitiesToMetrics: attach})
	roots := res.Roots
	if roots == nil {
		roots = []*tree.Node{}
	}
	writeJSON(w, http.StatusOK, treeResponse{
		availability: available(!res.Empty(), msgNoRegistryData),
		Roots:        roots,
		Conflicts:    len(res.Assignments.Conflicts),
		Unclassified: res.Assignments.Unclassified,
	})
}

// ----------------------------------------------------------------------------
// GET /api/graph, GET /api/graph/layout
// ----------------------------------------------------------------------------

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, msg, err := s.filteredGraph(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{availability: available(!g.Empty(), msg), Graph: g})
}

func (s *Server) handleGraphLayout(w http.ResponseWriter, r *http.Request) {
	g, msg, err := s.filteredGraph(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	l, err := pipeline.LayoutGraph(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{availability: available(!g.Empty(), msg), Layout: l})
}

// filteredGraph returns the graph scoped to the root query parameter and the
// message to report if it is empty.
func (s *Server) filteredGraph(r *http.Request) (graph.Graph, string, error) {
	root := r.URL.Query().Get("root")
	if err := errors.ValidateNodeID(root); err != nil {
		return graph.Graph{}, "", err
	}
	m, err := s.runner.Load(r.Context())
	if err != nil {
		return graph.Graph{}, "", err
	}
	msg := msgNoRegistryData
	if root != "" && !m.Empty() {
		msg = msgNoMatch
	}
	return graph.Filter(m.Graph(), root), msg, nil
}

// ----------------------------------------------------------------------------
// GET /api/entities/{code}/schema, POST /api/schema
// ----------------------------------------------------------------------------

func (s *Server) handleEntitySchema(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	sc, err := s.runner.EntitySchema(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeSchema(w, r, code, sc)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	focus := r.URL.Query().Get("focus")
	if err := errors.ValidateFocus(focus); err != nil {
		writeError(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram"))
		return
	}
	s.writeSchema(w, r, "", pipeline.ParseSchema(r.Context(), string(body), focus))
}

func (s *Server) writeSchema(w http.ResponseWriter, r *http.Request, entity string, sc *schema.Schema) {
	opts, err := layoutOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	l, err := pipeline.LayoutSchema(r.Context(), sc, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		availability: available(!sc.Empty(), msgNoDiagram),
		Entity:       entity,
		Schema:       sc,
		Layout:       l,
	})
}

// ----------------------------------------------------------------------------
// Query parameters
// ----------------------------------------------------------------------------

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

// maxTicks bounds the simulation length a client may request.
const maxTicks = 1000

func layoutOptions(r *http.Request) (pipeline.LayoutOptions, error) {
	v := r.URL.Query().Get("ticks")
	if v == "" {
		return pipeline.LayoutOptions{}, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxTicks {
		return pipeline.LayoutOptions{}, errors.New(errors.ErrCodeInvalidInput, "ticks must be between 1 and %d, got %q", maxTicks, v)
	}
	return pipeline.LayoutOptions{Ticks: n}, nil
}
