package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
	"github.com/ziadkadry99/poe2genie/internal/build"
	"github.com/ziadkadry99/poe2genie/internal/catalog"
	"github.com/ziadkadry99/poe2genie/internal/library"
	"github.com/ziadkadry99/poe2genie/internal/passives"
	"github.com/ziadkadry99/poe2genie/internal/picker"
)

const maxFormBytes = 1 << 20

type errorPage struct {
	pageMeta
	Heading string
	Message string
}

func (w *Web) renderError(rw http.ResponseWriter, status int, heading, message string) {
	w.render(rw, status, "error", errorPage{
		pageMeta: pageMeta{Title: heading},
		Heading:  heading,
		Message:  message,
	})
}

func (w *Web) handleHome(rw http.ResponseWriter, r *http.Request) {
	w.render(rw, http.StatusOK, "home", pageMeta{Title: "poe2genie", Active: "home"})
}

type searchPage struct {
	pageMeta
	Query     string
	ItemType  string
	League    string
	ItemTypes []string
	Leagues   []string
	Searched  bool
	Results   []catalog.Item
	Error     string
}

func (w *Web) handleSearch(rw http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := searchPage{
		pageMeta:  pageMeta{Title: "Item Search", Active: "search"},
		Query:     q.Get("q"),
		ItemType:  q.Get("type"),
		League:    q.Get("league"),
		ItemTypes: append([]string{catalog.ItemTypeAll}, catalog.ItemTypes...),
		Leagues:   catalog.Leagues,
	}
	if p.ItemType == "" {
		p.ItemType = catalog.ItemTypeAll
	}
	if p.League == "" {
		p.League = w.Defaults.League
	}

	if strings.TrimSpace(p.Query) != "" {
		p.Searched = true
		results, err := w.Searcher.Search(r.Context(), p.Query, p.ItemType, p.League)
		if err != nil {
			w.Logger.Warn("search page failed", zap.String("query", p.Query), zap.Error(err))
			p.Error = "Failed to fetch item data."
		} else {
			p.Results = results
		}
	}
	w.render(rw, http.StatusOK, "search", p)
}

type itemPage struct {
	pageMeta
	Item     catalog.Item
	ItemType string
	League   string
	Analysis template.HTML
	Error    string
}

func (w *Web) handleItem(rw http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(rw, r.Body, maxFormBytes)
	itemType := r.FormValue("type")
	if itemType == "" {
		itemType = w.Defaults.ItemType
	}
	league := r.FormValue("league")
	if league == "" {
		league = w.Defaults.League
	}

	item, err := w.Searcher.Find(r.Context(), chi.URLParam(r, "detailsId"), itemType, league)
	if errors.Is(err, catalog.ErrNotFound) {
		w.renderError(rw, http.StatusNotFound, "Item not found", "No item with that id is listed for this league and item type.")
		return
	}
	if err != nil {
		w.Logger.Warn("item page lookup failed", zap.Error(err))
		w.renderError(rw, http.StatusBadGateway, "Item unavailable", "Failed to fetch item data.")
		return
	}

	p := itemPage{
		pageMeta: pageMeta{Title: item.Name, Active: "search"},
		Item:     item,
		ItemType: itemType,
		League:   league,
	}
	if r.Method == http.MethodPost {
		prompt, err := assistant.ItemAnalysisPrompt(item)
		if err == nil {
			var answer string
			answer, err = w.Gateway.Ask(r.Context(), prompt, "")
			p.Analysis = w.renderMarkdown(answer)
		}
		if err != nil {
			p.Error = err.Error()
		}
	}
	w.render(rw, http.StatusOK, "item", p)
}

type chatPage struct {
	pageMeta
	Question string
	Answer   template.HTML
	Error    string
}

// handleChat is the form fallback for clients without websockets.
func (w *Web) handleChat(rw http.ResponseWriter, r *http.Request) {
	p := chatPage{pageMeta: pageMeta{Title: "AI Chat", Active: "chat"}}
	if r.Method != http.MethodPost {
		w.render(rw, http.StatusOK, "chat", p)
		return
	}

	r.Body = http.MaxBytesReader(rw, r.Body, maxFormBytes)
	p.Question = strings.TrimSpace(r.FormValue("question"))
	if p.Question == "" {
		p.Error = "Question is required"
		w.render(rw, http.StatusBadRequest, "chat", p)
		return
	}
	answer, err := w.Gateway.Ask(r.Context(), p.Question, assistant.QuestionSystemPrompt)
	if err != nil {
		p.Error = err.Error()
	} else {
		p.Answer = w.renderMarkdown(answer)
	}
	w.render(rw, http.StatusOK, "chat", p)
}

type slotView struct {
	Spec    picker.SlotSpec
	Picker  *picker.Picker
	Uniques []catalog.Item
	Bases   []picker.BaseItem
}

type savedBuild struct {
	Build build.Build
	Token string
}

type plannerPage struct {
	pageMeta
	Build         build.Build
	Classes       []build.CharacterClass
	Affixes       []build.Affix
	Slots         []slotView
	SelectedNodes string
	Tree          template.HTML
	Saved         []savedBuild
	Share         *library.SaveResult
	Advice        template.HTML
	Error         string
}

// handlePlanner shows the planner. GET starts empty or from ?data=; POST
// carries the form state and an action: toggle, save, advice, or anything
// else to just refresh suggestions.
func (w *Web) handlePlanner(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		b       build.Build
		pickers map[build.Slot]*picker.Picker
		p       plannerPage
	)

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(rw, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			w.renderError(rw, http.StatusBadRequest, "Bad request", "The form could not be read.")
			return
		}
		b, pickers = picker.FromForm(r.PostForm)

		switch r.PostForm.Get("action") {
		case "toggle":
			if id, err := strconv.Atoi(r.PostForm.Get("node")); err == nil {
				b.Passives.Toggle(id)
			}
		case "save":
			res, err := library.SaveAndShare(ctx, w.Library, b, w.PublicURL)
			switch {
			case errors.Is(err, library.ErrNameRequired):
				p.Error = "Please enter a build name."
			case err != nil:
				w.Logger.Error("saving build from planner failed", zap.Error(err))
				p.Error = "Failed to save build."
			default:
				p.Share = &res
			}
		case "advice":
			prompt, err := assistant.BuildAdvicePrompt(b)
			if err == nil {
				var answer string
				answer, err = w.Gateway.Ask(ctx, prompt, "")
				p.Advice = w.renderMarkdown(answer)
			}
			if err != nil {
				p.Error = err.Error()
			}
		}
	} else {
		b = build.New()
		if data := r.URL.Query().Get("data"); data != "" {
			decoded, err := build.Decode(data)
			if err != nil {
				p.Error = "Invalid Build Link"
			} else {
				b = decoded
			}
		}
		pickers = make(map[build.Slot]*picker.Picker, len(build.Slots))
		for _, s := range build.Slots {
			pickers[s] = picker.New(s, b.Item(s))
		}
	}

	p.pageMeta = pageMeta{Title: "Build Planner", Active: "builds"}
	p.Build = b
	p.Classes = build.Classes
	p.Affixes = build.Affixes
	p.Slots = w.slotViews(ctx, pickers)
	p.SelectedNodes = passives.FormatNodeList(b.Passives.SelectedNodes)
	p.Tree = w.treeSVG(b.Passives)
	p.Saved = w.savedBuilds(ctx)
	w.render(rw, http.StatusOK, "builds", p)
}

func (w *Web) slotViews(ctx context.Context, pickers map[build.Slot]*picker.Picker) []slotView {
	var uniqueSlots []build.Slot
	for _, spec := range picker.Specs {
		if pickers[spec.Slot].Mode == picker.ModeUnique {
			uniqueSlots = append(uniqueSlots, spec.Slot)
		}
	}
	candidates := map[build.Slot][]catalog.Item{}
	if len(uniqueSlots) > 0 && w.Suggester != nil {
		candidates = w.Suggester.Prefetch(ctx, uniqueSlots)
	}

	views := make([]slotView, 0, len(picker.Specs))
	for _, spec := range picker.Specs {
		pk := pickers[spec.Slot]
		v := slotView{Spec: spec, Picker: pk}
		if pk.Mode == picker.ModeBase {
			v.Bases = picker.FilterBases(picker.BaseItems, spec.Category, pk.BaseQuery)
		} else {
			v.Uniques = picker.FilterUniques(candidates[spec.Slot], pk.UniqueQuery)
		}
		views = append(views, v)
	}
	return views
}

func (w *Web) savedBuilds(ctx context.Context) []savedBuild {
	builds := w.Library.List(ctx)
	out := make([]savedBuild, 0, len(builds))
	for _, b := range builds {
		token, err := build.Encode(b)
		if err != nil {
			w.Logger.Warn("skipping unencodable saved build", zap.String("name", b.Name), zap.Error(err))
			continue
		}
		out = append(out, savedBuild{Build: b, Token: token})
	}
	return out
}

func (w *Web) treeSVG(sel build.PassiveSelection) template.HTML {
	if w.Tree == nil || !w.Tree.Available() {
		return ""
	}
	var buf bytes.Buffer
	if err := passives.RenderSVG(&buf, w.Tree.Layout(), sel); err != nil {
		w.Logger.Warn("rendering passive tree failed", zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}

type viewPage struct {
	pageMeta
	Build    build.Build
	Token    string
	ShareURL string
	Slots    []picker.SlotSpec
	Tree     template.HTML
}

func (w *Web) handleView(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("data")
	b, err := build.Decode(token)
	if err != nil {
		w.renderError(rw, http.StatusBadRequest, "Invalid Build Link", "The build link is invalid or corrupted.")
		return
	}
	w.render(rw, http.StatusOK, "view", viewPage{
		pageMeta: pageMeta{Title: b.Name, Active: "builds"},
		Build:    b,
		Token:    token,
		ShareURL: library.ShareURL(w.PublicURL, token),
		Slots:    picker.Specs,
		Tree:     w.treeSVG(b.Passives),
	})
}
