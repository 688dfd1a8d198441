package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const armourBody = `{"lines":[` +
	`{"id":1,"name":"Kaom's Heart","baseType":"Glorious Plate","chaosValue":12.5,"detailsId":"kaoms-heart"},` +
	`{"id":2,"name":"Belly of the Beast","baseType":"Full Wyrmscale","chaosValue":3,"detailsId":"belly-of-the-beast"}` +
	`],"language":{"name":"en"}}`

const weaponBody = `{"lines":[{"id":3,"name":"Kaom's Primacy","baseType":"Karui Chopper","chaosValue":1,"detailsId":"kaoms-primacy"}]}`

// fakeNinja serves canned overviews per item type and fails every other type.
type fakeNinja struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
	hits   atomic.Int32
}

func (f *fakeNinja) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	t := r.URL.Query().Get("type")
	f.mu.Lock()
	f.calls = append(f.calls, r.URL.Query().Get("league")+"/"+t)
	body, ok := f.bodies[t]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func newFake(t *testing.T, bodies map[string]string) (*fakeNinja, *Client) {
	t.Helper()
	f := &fakeNinja{bodies: bodies}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, NewClient(srv.URL, srv.Client(), zaptest.NewLogger(t))
}

func TestOverviewReturnsBodyVerbatim(t *testing.T) {
	f, c := newFake(t, map[string]string{"UniqueArmour": armourBody})

	body, err := c.Overview(context.Background(), "Hardcore Affliction", "UniqueArmour")
	require.NoError(t, err)
	assert.Equal(t, armourBody, string(body))
	assert.Equal(t, []string{"Hardcore Affliction/UniqueArmour"}, f.calls)
}

func TestOverviewURLEncodesQuery(t *testing.T) {
	c := NewClient("https://poe.ninja/", nil, nil)
	assert.Equal(t,
		"https://poe.ninja/api/data/itemoverview?league=SSF+Hardcore&type=UniqueArmour",
		c.OverviewURL("SSF Hardcore", "UniqueArmour"))
}

func TestOverviewStatusError(t *testing.T) {
	_, c := newFake(t, nil)

	_, err := c.Overview(context.Background(), "Standard", "UniqueArmour")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
}

func TestOverviewRejectsNonJSON(t *testing.T) {
	_, c := newFake(t, map[string]string{"UniqueArmour": "<html>maintenance</html>"})

	_, err := c.Overview(context.Background(), "Standard", "UniqueArmour")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestItemsTagsItemType(t *testing.T) {
	_, c := newFake(t, map[string]string{"UniqueArmour": armourBody})

	items, err := c.Items(context.Background(), "Standard", "UniqueArmour")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Kaom's Heart", items[0].Name)
	assert.Equal(t, "Glorious Plate", items[0].BaseType)
	assert.Equal(t, 12.5, items[0].ChaosValue)
	assert.Equal(t, "UniqueArmour", items[1].ItemType)
}

func TestSearchBlankQueryDoesNotFetch(t *testing.T) {
	f, c := newFake(t, map[string]string{"UniqueArmour": armourBody})
	s := NewSearcher(c, 4, nil)

	results, err := s.Search(context.Background(), "   ", ItemTypeAll, "Standard")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, f.hits.Load())
}

func TestSearchAllSkipsFailedTypesAndKeepsOrder(t *testing.T) {
	f, c := newFake(t, map[string]string{
		"UniqueArmour": armourBody,
		"UniqueWeapon": weaponBody,
	})
	s := NewSearcher(c, 3, zaptest.NewLogger(t))

	results, err := s.Search(context.Background(), "KAOM", ItemTypeAll, "Standard")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Kaom's Heart", results[0].Name)
	assert.Equal(t, "Kaom's Primacy", results[1].Name)
	assert.EqualValues(t, len(ItemTypes), f.hits.Load())
}

func TestSearchMatchesNameOnly(t *testing.T) {
	_, c := newFake(t, map[string]string{"UniqueArmour": armourBody})
	s := NewSearcher(c, 1, nil)

	results, err := s.Search(context.Background(), "Glorious", "UniqueArmour", "Standard")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchErrorsWhenEveryTypeFails(t *testing.T) {
	_, c := newFake(t, nil)
	s := NewSearcher(c, 2, nil)

	_, err := s.Search(context.Background(), "kaom", ItemTypeAll, "Standard")
	require.Error(t, err)
	var se *StatusError
	assert.True(t, errors.As(err, &se))
}

func TestSearchWithProgressReportsEveryType(t *testing.T) {
	_, c := newFake(t, map[string]string{"UniqueArmour": armourBody})
	s := NewSearcher(c, 4, nil)

	var mu sync.Mutex
	matches := map[string]int{}
	failures := 0
	_, err := s.SearchWithProgress(context.Background(), "kaom", ItemTypeAll, "Standard",
		func(itemType string, n int, err error) {
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				return
			}
			matches[itemType] = n
		})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"UniqueArmour": 1}, matches)
	assert.Equal(t, len(ItemTypes)-1, failures)
}

func TestTypesFor(t *testing.T) {
	assert.Equal(t, ItemTypes, TypesFor(ItemTypeAll))
	assert.Equal(t, ItemTypes, TypesFor(""))
	assert.Equal(t, []string{"Currency"}, TypesFor("Currency"))
}

func TestFind(t *testing.T) {
	_, c := newFake(t, map[string]string{"UniqueArmour": armourBody})
	s := NewSearcher(c, 1, nil)

	item, err := s.Find(context.Background(), "belly-of-the-beast", "UniqueArmour", "Standard")
	require.NoError(t, err)
	assert.Equal(t, "Belly of the Beast", item.Name)

	_, err = s.Find(context.Background(), "missing", "UniqueArmour", "Standard")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKnownItemType(t *testing.T) {
	assert.True(t, KnownItemType("SkillGem"))
	assert.False(t, KnownItemType(ItemTypeAll))
}

func newRouter(t *testing.T, bodies map[string]string) (*fakeNinja, http.Handler) {
	t.Helper()
	f, c := newFake(t, bodies)
	h := NewHandler(c, NewSearcher(c, 4, nil), Defaults{
		League:             "Affliction",
		ItemType:           "UniqueArmour",
		CacheMaxAgeSeconds: 3600,
	}, zaptest.NewLogger(t))
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return f, r
}

func TestHandleOverviewDefaults(t *testing.T) {
	f, r := newRouter(t, map[string]string{"UniqueArmour": armourBody})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poe-ninja", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, armourBody, w.Body.String())
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, []string{"Affliction/UniqueArmour"}, f.calls)
}

func TestHandleOverviewTypeAlias(t *testing.T) {
	f, r := newRouter(t, map[string]string{"UniqueWeapon": weaponBody})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poe-ninja?type=UniqueWeapon&league=Standard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Standard/UniqueWeapon"}, f.calls)
}

func TestHandleOverviewFailure(t *testing.T) {
	_, r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/poe-ninja?itemType=Map", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch from poe.ninja"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestHandleSearch(t *testing.T) {
	_, r := newRouter(t, map[string]string{"UniqueArmour": armourBody})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=belly", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Results []Item `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "belly-of-the-beast", body.Results[0].DetailsID)
}

func TestHandleSearchAllFailed(t *testing.T) {
	_, r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=belly", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch item data."}`, w.Body.String())
}

func TestHandleItem(t *testing.T) {
	_, r := newRouter(t, map[string]string{"UniqueArmour": armourBody})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/kaoms-heart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var item Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Kaom's Heart", item.Name)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleMeta(t *testing.T) {
	_, r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/meta", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var meta Meta
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Len(t, meta.ItemTypes, 10)
	assert.Len(t, meta.Leagues, 8)
	assert.Equal(t, "Affliction", meta.DefaultLeague)
}
