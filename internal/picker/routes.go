package picker

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// RegisterRoutes mounts the equipment picker API routes.
func RegisterRoutes(r chi.Router, s *Suggester) {
	r.Route("/api/picker", func(r chi.Router) {
		r.Get("/affixes", handleAffixes)
		r.Get("/slots", handleSlots)
		r.Get("/{slot}", handleSuggest(s))
	})
}

func handleAffixes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, build.Affixes)
}

func handleSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Specs)
}

func handleSuggest(s *Suggester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := build.Slot(chi.URLParam(r, "slot"))
		if _, ok := SpecFor(slot); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown slot"})
			return
		}
		mode, err := ParseMode(r.URL.Query().Get("mode"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		out, err := s.Suggest(r.Context(), slot, mode, r.URL.Query().Get("q"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
