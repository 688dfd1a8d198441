package passives

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// Handler serves a precomputed layout. A nil graph means the tree asset was
// not available; every route then answers 503.
type Handler struct {
	graph  *Graph
	layout Layout
}

// NewHandler computes the layout once for the lifetime of the server.
func NewHandler(g *Graph, margin float64) *Handler {
	h := &Handler{graph: g}
	if g != nil {
		h.layout = ComputeLayout(g, margin)
	}
	return h
}

// Layout returns the precomputed layout.
func (h *Handler) Layout() Layout { return h.layout }

// Available reports whether a tree was loaded.
func (h *Handler) Available() bool { return h.graph != nil }

// RegisterRoutes mounts the passive tree API routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/passives", func(r chi.Router) {
		r.Get("/layout", h.handleLayout)
		r.Get("/tree.svg", h.handleSVG)
		r.Post("/toggle", handleToggle)
	})
}

func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !h.Available() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "passive tree unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, h.layout)
}

func (h *Handler) handleSVG(w http.ResponseWriter, r *http.Request) {
	if !h.Available() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "passive tree unavailable"})
		return
	}
	sel := build.PassiveSelection{SelectedNodes: ParseNodeList(r.URL.Query().Get("nodes"))}
	w.Header().Set("Content-Type", "image/svg+xml")
	RenderSVG(w, h.layout, sel)
}

const maxBodyBytes = 1 << 20

type toggleRequest struct {
	SelectedNodes []int `json:"selectedNodes"`
	NodeID        *int  `json:"nodeId"`
}

func handleToggle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.NodeID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "nodeId is required"})
		return
	}

	sel := build.PassiveSelection{SelectedNodes: ParseNodeList(FormatNodeList(req.SelectedNodes))}
	sel.Toggle(*req.NodeID)
	if sel.SelectedNodes == nil {
		sel.SelectedNodes = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"selectedNodes": sel.SelectedNodes})
}

// ParseNodeList parses "1,2,3" into ids, dropping blanks, non-numbers and
// repeats.
func ParseNodeList(s string) []int {
	var sel build.PassiveSelection
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || sel.Contains(id) {
			continue
		}
		sel.Toggle(id)
	}
	return sel.SelectedNodes
}

// FormatNodeList is the inverse of ParseNodeList.
func FormatNodeList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
