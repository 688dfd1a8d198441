package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

const maxBodyBytes = 1 << 20

// RegisterRoutes mounts the assistant API routes.
func RegisterRoutes(r chi.Router, g *Gateway, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/chat", handleChat(g, logger))
		r.Post("/analyze-item", handleAnalyzeItem(g, logger))
		r.Post("/build-advice", handleBuildAdvice(g, logger))
		r.Post("/enhance-search", handleEnhanceSearch(g, logger))
		r.Post("/suggest-build", handleSuggestBuild(g, logger))
	})
}

var errBadBody = errors.New("invalid request body")

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errBadBody.Error())
		return false
	}
	return true
}

// present mirrors a truthiness check on a raw JSON value: absent, null,
// false, 0 and "" all count as missing.
func present(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}

// reply runs ask and writes either {key: answer} or the taxonomy message.
func reply(w http.ResponseWriter, r *http.Request, g *Gateway, key, prompt, system string) {
	answer, err := g.Ask(r.Context(), prompt, system)
	if err != nil {
		if r.Context().Err() != nil {
			// Deadline passed or the client left; the timeout middleware
			// writes the response.
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{key: answer})
}

func handleChat(g *Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question string `json:"question"`
		}
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			writeError(w, http.StatusBadRequest, "Question is required")
			return
		}
		reply(w, r, g, "answer", req.Question, QuestionSystemPrompt)
	}
}

func handleAnalyzeItem(g *Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Item json.RawMessage `json:"item"`
		}
		if !decode(w, r, &req) {
			return
		}
		if !present(req.Item) {
			writeError(w, http.StatusBadRequest, "Item data is required")
			return
		}
		var item catalog.Item
		if err := json.Unmarshal(req.Item, &item); err != nil {
			writeError(w, http.StatusBadRequest, errBadBody.Error())
			return
		}
		prompt, err := ItemAnalysisPrompt(item)
		if err != nil {
			logger.Error("rendering item prompt", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		reply(w, r, g, "analysis", prompt, "")
	}
}

func handleBuildAdvice(g *Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			BuildData json.RawMessage `json:"buildData"`
		}
		if !decode(w, r, &req) {
			return
		}
		if !present(req.BuildData) {
			writeError(w, http.StatusBadRequest, "Build data is required")
			return
		}
		var b build.Build
		if err := json.Unmarshal(req.BuildData, &b); err != nil {
			writeError(w, http.StatusBadRequest, errBadBody.Error())
			return
		}
		prompt, err := BuildAdvicePrompt(b)
		if err != nil {
			logger.Error("rendering build prompt", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		reply(w, r, g, "advice", prompt, "")
	}
}

func handleEnhanceSearch(g *Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			writeError(w, http.StatusBadRequest, "Query is required")
			return
		}
		prompt, err := SearchEnhancementPrompt(req.Query)
		if err != nil {
			logger.Error("rendering search prompt", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		reply(w, r, g, "suggestion", prompt, "")
	}
}

func handleSuggestBuild(g *Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Playstyle   string `json:"playstyle"`
			Preferences string `json:"preferences"`
		}
		if !decode(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Playstyle) == "" {
			writeError(w, http.StatusBadRequest, "Playstyle is required")
			return
		}
		prompt, err := BuildSuggestionPrompt(req.Playstyle, req.Preferences)
		if err != nil {
			logger.Error("rendering suggestion prompt", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		reply(w, r, g, "suggestion", prompt, "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
