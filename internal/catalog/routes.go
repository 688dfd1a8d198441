package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Defaults are the query values used when a request omits them.
type Defaults struct {
	League             string
	ItemType           string
	CacheMaxAgeSeconds int
}

// Handler serves the catalog API.
type Handler struct {
	client   *Client
	searcher *Searcher
	defaults Defaults
	logger   *zap.Logger
}

// NewHandler wires the catalog API.
func NewHandler(client *Client, searcher *Searcher, defaults Defaults, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{client: client, searcher: searcher, defaults: defaults, logger: logger}
}

// RegisterRoutes mounts the item price catalog routes.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/poe-ninja", h.handleOverview)
	r.Get("/api/search", h.handleSearch)
	r.Get("/api/items/{detailsId}", h.handleItem)
	r.Get("/api/catalog/meta", h.handleMeta)
}

func (h *Handler) params(r *http.Request) (league, itemType string) {
	q := r.URL.Query()
	itemType = q.Get("itemType")
	if itemType == "" {
		itemType = q.Get("type")
	}
	if itemType == "" {
		itemType = h.defaults.ItemType
	}
	league = q.Get("league")
	if league == "" {
		league = h.defaults.League
	}
	return league, itemType
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	league, itemType := h.params(r)

	body, err := h.client.Overview(r.Context(), league, itemType)
	if err != nil {
		h.logger.Warn("item overview proxy failed",
			zap.String("league", league),
			zap.String("item_type", itemType),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to fetch from poe.ninja")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.defaults.CacheMaxAgeSeconds))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	league, _ := h.params(r)
	itemType := r.URL.Query().Get("itemType")
	if itemType == "" {
		itemType = ItemTypeAll
	}

	results, err := h.searcher.Search(r.Context(), r.URL.Query().Get("q"), itemType, league)
	if err != nil {
		h.logger.Warn("item search failed", zap.String("league", league), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch item data.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request) {
	league, itemType := h.params(r)

	item, err := h.searcher.Find(r.Context(), chi.URLParam(r, "detailsId"), itemType, league)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.logger.Warn("item lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch from poe.ninja")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Meta{
		ItemTypes:     ItemTypes,
		Leagues:       Leagues,
		DefaultLeague: h.defaults.League,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
