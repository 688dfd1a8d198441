// Package web serves the HTML pages and the chat websocket. Pages are
// rendered on the server from embedded templates and compose the catalog,
// assistant, picker, passive tree and library packages.
package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/library"
	"github.com/ziadkadry99/poe2genie/internal/markdown"
	"github.com/ziadkadry99/poe2genie/internal/passives"
	"github.com/ziadkadry99/poe2genie/internal/picker"
)

// Deps are the components the pages are built from.
type Deps struct {
	Searcher  *catalog.Searcher
	Defaults  catalog.Defaults
	Gateway   *assistant.Gateway
	Suggester *picker.Suggester
	Library   *library.Library
	Tree      *passives.Handler
	Markdown  *markdown.Renderer
	PublicURL string
	Logger    *zap.Logger
}

// Web renders the pages.
type Web struct {
	Deps
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New(deps Deps) (*Web, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.New()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Web{Deps: deps, pages: pages}, nil
}

// RegisterRoutes mounts the pages and the chat socket.
func (w *Web) RegisterRoutes(r chi.Router) {
	r.Get("/", w.handleHome)
	r.Get("/search", w.handleSearch)
	r.Get("/item/{detailsId}", w.handleItem)
	r.Post("/item/{detailsId}", w.handleItem)
	r.Get("/chat", w.handleChat)
	r.Post("/chat", w.handleChat)
	r.Get("/builds", w.handlePlanner)
	r.Post("/builds", w.handlePlanner)
	r.Get("/builds/view", w.handleView)
	r.Get("/ws/chat", w.handleWebSocket)
}

// pageMeta is embedded in every page's data.
type pageMeta struct {
	Title  string
	Active string
}

func (w *Web) render(rw http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := w.pages[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		w.Logger.Error("rendering page failed", zap.String("page", page), zap.Error(err))
		http.Error(rw, "Internal server error", http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	buf.WriteTo(rw)
}

// renderMarkdown converts an answer to HTML, falling back to escaped text.
func (w *Web) renderMarkdown(src string) template.HTML {
	out, err := w.Markdown.Render(src)
	if err != nil {
		w.Logger.Warn("markdown rendering failed", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(out)
}
