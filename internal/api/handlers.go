package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/forgeboard/pkg/buildinfo"
	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/resize"
	"github.com/matzehuels/forgeboard/pkg/store"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// Wire types
// =============================================================================

// LayoutBody is the request body of the PUT endpoints.
type LayoutBody struct {
	Order []string     `json:"layout"`
	Tiers layout.Tiers `json:"sizes,omitempty"`
}

// LayoutResponse is a snapshot together with its packed grid.
type LayoutResponse struct {
	Name      string          `json:"name,omitempty"`
	Namespace store.Namespace `json:"namespace,omitempty"`
	Order     []string        `json:"layout"`
	Tiers     layout.Tiers    `json:"sizes"`
	Grid      layout.Grid     `json:"grid"`
}

// ImportBody is the request body of POST /import.
type ImportBody struct {
	Name      string `json:"name"`
	Token     string `json:"token"`
	Overwrite bool   `json:"overwrite"`
}

// SnapBody is the request body of POST /snap.
type SnapBody struct {
	Cols float64 `json:"cols"`
	Rows float64 `json:"rows"`
}

// SnapResponse is the response of POST /snap.
type SnapResponse struct {
	Size tier.Tier `json:"size"`
	Cols int       `json:"cols"`
	Rows int       `json:"rows"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Catalog.Entries()
	if q := r.URL.Query().Get("q"); q != "" {
		entries = s.store.Catalog.Search(q)
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]LayoutResponse, 0, len(preset.Names()))
	for _, name := range preset.Names() {
		snap, err := s.store.LoadPreset(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, s.packed(snap))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var body SnapBody
	if !s.decode(w, r, &body) {
		return
	}
	if invalidUnits(body.Cols) || invalidUnits(body.Rows) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "cols and rows must be finite and non-negative"))
		return
	}
	t := resize.Snap(body.Cols, body.Rows)
	span := t.Span()
	writeJSON(w, http.StatusOK, SnapResponse{Size: t, Cols: span.Cols, Rows: span.Rows})
}

func (s *Server) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.LoadDefault(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.packed(snap))
}

func (s *Server) handlePutCurrent(w http.ResponseWriter, r *http.Request) {
	var body LayoutBody
	if !s.decode(w, r, &body) {
		return
	}
	user := chi.URLParam(r, "user")
	if err := s.store.PersistCurrent(r.Context(), user, body.Order, body.Tiers); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.handleGetCurrent(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.LoadSaved(r.Context(), chi.URLParam(r, "user"), layoutName(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.packed(snap))
}

func (s *Server) handlePutSaved(w http.ResponseWriter, r *http.Request) {
	var body LayoutBody
	if !s.decode(w, r, &body) {
		return
	}
	overwrite, err := boolQuery(r, "overwrite")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	user, name := chi.URLParam(r, "user"), layoutName(r)
	if err := s.store.SaveAs(r.Context(), user, name, body.Order, body.Tiers, overwrite); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.handleGetSaved(w, r)
}

func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "user"), layoutName(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	token, err := s.store.Share(r.Context(), chi.URLParam(r, "user"), layoutName(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var body ImportBody
	if !s.decode(w, r, &body) {
		return
	}
	snap, err := s.store.ImportToken(r.Context(), chi.URLParam(r, "user"), body.Name, body.Token, body.Overwrite)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.packed(snap))
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) packed(snap store.Snapshot) LayoutResponse {
	cat := s.store.Catalog
	return LayoutResponse{
		Name:      snap.Name,
		Namespace: snap.Namespace,
		Order:     snap.Order,
		Tiers:     snap.Tiers.Resolve(cat, snap.Order),
		Grid:      layout.Pack(cat, snap.Order, snap.Tiers, s.columns),
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		code := errors.ErrCodeInvalidInput
		if errors.GetCode(err) == errors.ErrCodeInvalidTier {
			code = errors.ErrCodeInvalidTier
		}
		s.writeError(w, r, errors.New(code, "invalid request body: %v", err))
		return false
	}
	return true
}

// layoutName returns the {name} parameter, unescaped when the router matched
// on the raw path.
func layoutName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func boolQuery(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", key, v)
	}
	return b, nil
}

func invalidUnits(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
