package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

// ShareURL returns the viewer link for token under publicURL.
func ShareURL(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/builds/view?data=" + url.QueryEscape(token)
}

// SaveResult is the response to a successful save.
type SaveResult struct {
	Build    build.Build `json:"build"`
	Token    string      `json:"token"`
	ShareURL string      `json:"shareUrl"`
}

// RegisterRoutes mounts the saved-build API routes.
func RegisterRoutes(r chi.Router, lib *Library, publicURL string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Route("/api/builds", func(r chi.Router) {
		r.Get("/", handleList(lib))
		r.Post("/", handleSave(lib, publicURL, logger))
		r.Get("/view", handleView)
		r.Get("/export.xlsx", handleExport(lib, logger))
	})
}

func handleList(lib *Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, lib.List(r.Context()))
	}
}

func handleSave(lib *Library, publicURL string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var b build.Build
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		result, err := SaveAndShare(r.Context(), lib, b, publicURL)
		if errors.Is(err, ErrNameRequired) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Build name is required"})
			return
		}
		if err != nil {
			logger.Error("saving build failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save build"})
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func handleView(w http.ResponseWriter, r *http.Request) {
	b, err := build.Decode(r.URL.Query().Get("data"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid Build Link"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func handleExport(lib *Library, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := ExportXLSX(&buf, lib.List(r.Context())); err != nil {
			logger.Error("exporting builds failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="poe2genie-builds.xlsx"`)
		w.Write(buf.Bytes())
	}
}

// SaveAndShare saves b and returns its share token and viewer URL.
func SaveAndShare(ctx context.Context, lib *Library, b build.Build, publicURL string) (SaveResult, error) {
	if err := lib.Save(ctx, b); err != nil {
		return SaveResult{}, err
	}
	token, err := build.Encode(b)
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Build: b, Token: token, ShareURL: ShareURL(publicURL, token)}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
