package passives

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/poe2genie/internal/build"
)

const objectTree = `{
  "tree": "Default",
  "nodes": {
    "root": {"group": 0},
    "10": {"skill": 10, "dn": "Strength", "x": 100, "y": 200, "out": ["20", 30]},
    "20": {"skill": 20, "dn": "Heart of the Warrior", "x": 150, "y": 260, "out": []},
    "30": {"id": 30, "dn": "Dexterity", "x": 220, "y": 180, "out": [99]},
    "40": {"skill": 40, "dn": "Mastery", "out": [10]}
  }
}`

const arrayTree = `{"nodes": [
  {"id": 2, "name": "B", "x": 0, "y": 10, "out": [1]},
  {"id": 1, "name": "A", "x": -5, "y": 0, "out": [2]}
]}`

func TestLoadGraphObject(t *testing.T) {
	g, err := LoadGraph(strings.NewReader(objectTree))
	require.NoError(t, err)

	want := []Node{
		{ID: 10, Name: "Strength", X: 100, Y: 200, Out: []int{20, 30}},
		{ID: 20, Name: "Heart of the Warrior", X: 150, Y: 260, Out: []int{}},
		{ID: 30, Name: "Dexterity", X: 220, Y: 180, Out: []int{99}},
	}
	if diff := cmp.Diff(want, g.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	n, ok := g.Node(20)
	require.True(t, ok)
	assert.Equal(t, "Heart of the Warrior", n.Name)
	_, ok = g.Node(40)
	assert.False(t, ok, "nodes without coordinates are skipped")
}

func TestLoadGraphArray(t *testing.T) {
	g, err := LoadGraph(strings.NewReader(arrayTree))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, 1, g.Nodes[0].ID)
	assert.Equal(t, "A", g.Nodes[0].Name)
}

func TestLoadGraphErrors(t *testing.T) {
	for name, in := range map[string]string{
		"not json":      "nope",
		"no nodes":      `{"tree":"x"}`,
		"scalar nodes":  `{"nodes": 5}`,
		"bad out entry": `{"nodes": [{"id": 1, "x": 0, "y": 0, "out": ["abc"]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadGraph(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestComputeLayoutTranslates(t *testing.T) {
	g := NewGraph([]Node{
		{ID: 1, X: -100, Y: 40},
		{ID: 2, X: 300, Y: -60},
	})

	l := ComputeLayout(g, 50)

	assert.Equal(t, 500.0, l.Width)
	assert.Equal(t, 200.0, l.Height)
	assert.Equal(t, PlacedNode{ID: 1, X: 50, Y: 150}, l.Nodes[0])
	assert.Equal(t, PlacedNode{ID: 2, X: 450, Y: 50}, l.Nodes[1])
}

func TestComputeLayoutSkipsMissingTargets(t *testing.T) {
	g := NewGraph([]Node{
		{ID: 1, X: 0, Y: 0, Out: []int{2, 99}},
		{ID: 2, X: 10, Y: 0, Out: []int{1}},
	})

	l := ComputeLayout(g, 0)

	require.Len(t, l.Edges, 2)
	assert.Equal(t, Edge{From: 1, To: 2, X1: 0, Y1: 0, X2: 10, Y2: 0}, l.Edges[0])
	assert.Equal(t, Edge{From: 2, To: 1, X1: 10, Y1: 0, X2: 0, Y2: 0}, l.Edges[1])
}

func TestComputeLayoutEmpty(t *testing.T) {
	l := ComputeLayout(NewGraph(nil), 50)
	assert.Equal(t, 100.0, l.Width)
	assert.Equal(t, 100.0, l.Height)
	assert.Empty(t, l.Nodes)
	assert.Empty(t, l.Edges)
}

func TestComputeLayoutSingleNode(t *testing.T) {
	l := ComputeLayout(NewGraph([]Node{{ID: 7, X: 1234, Y: -99}}), 50)
	assert.Equal(t, 100.0, l.Width)
	assert.Equal(t, PlacedNode{ID: 7, X: 50, Y: 50}, l.Nodes[0])
}

func TestRenderSVGMarksSelection(t *testing.T) {
	g, err := LoadGraph(strings.NewReader(objectTree))
	require.NoError(t, err)
	l := ComputeLayout(g, DefaultMargin)

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, l, build.PassiveSelection{SelectedNodes: []int{20, 12345}}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Equal(t, 1, strings.Count(out, `class="node selected"`))
	assert.Contains(t, out, `data-node-id="20"`)
	assert.Equal(t, 2, strings.Count(out, "<line"))
	assert.Contains(t, out, "<title>Heart of the Warrior</title>")
}

func TestRenderSVGEscapesNames(t *testing.T) {
	l := ComputeLayout(NewGraph([]Node{{ID: 1, Name: `<b>&"`}}), 0)
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, l, build.PassiveSelection{}))
	assert.NotContains(t, buf.String(), "<b>")
}

func TestParseNodeList(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, ParseNodeList("3, 1,,x,2,3"))
	assert.Empty(t, ParseNodeList(""))
}

func newRouter(t *testing.T, g *Graph) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(g, DefaultMargin))
	return r
}

func TestHandleToggle(t *testing.T) {
	r := newRouter(t, nil)

	toggle := func(body string) (int, []int) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/passives/toggle", strings.NewReader(body)))
		var resp struct {
			SelectedNodes []int `json:"selectedNodes"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return w.Code, resp.SelectedNodes
	}

	code, nodes := toggle(`{"selectedNodes":[1,2],"nodeId":3}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{1, 2, 3}, nodes)

	code, nodes = toggle(`{"selectedNodes":[1,2,3],"nodeId":2}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{1, 3}, nodes)

	code, nodes = toggle(`{"selectedNodes":[4],"nodeId":4}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{}, nodes)

	code, _ = toggle(`{"selectedNodes":[1]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = toggle(`not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandleToggleRejectsOversizedBody(t *testing.T) {
	r := newRouter(t, nil)
	body := `{"selectedNodes":[` + strings.Repeat("1,", maxBodyBytes/2+1000) + `1],"nodeId":7}`
	require.Greater(t, len(body), maxBodyBytes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/passives/toggle", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleLayoutAndSVG(t *testing.T) {
	g, err := LoadGraph(strings.NewReader(arrayTree))
	require.NoError(t, err)
	r := newRouter(t, g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/passives/layout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var l Layout
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	assert.Len(t, l.Nodes, 2)
	assert.Len(t, l.Edges, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/passives/tree.svg?nodes=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `class="node selected" data-node-id="1"`)
}

func TestHandleUnavailableTree(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/passives/layout", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
