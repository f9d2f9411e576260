package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelelgendy/mealmind/backend/internal/catalog"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

const searchBody = `{
	"results": [
		{
			"id": 715538,
			"title": "Bruschetta Style Pork & Pasta",
			"image": "https://img.example.com/715538.jpg",
			"servings": 4,
			"readyInMinutes": 35,
			"preparationMinutes": 10,
			"cookingMinutes": 25,
			"sourceUrl": "https://example.com/pork-pasta",
			"sourceName": "Example Kitchen",
			"dishTypes": ["lunch", "dinner"],
			"diets": ["gluten free"],
			"nutrition": {
				"nutrients": [
					{"name": "Calories", "amount": 521.3, "unit": "kcal"},
					{"name": "Protein", "amount": 32.1, "unit": "g"}
				]
			},
			"extendedIngredients": [
				{"name": "pork tenderloin", "amount": 1, "unit": "lb"},
				{"name": "pasta", "amount": 8, "unit": "oz"}
			],
			"analyzedInstructions": [
				{"steps": [{"step": "Sear the pork."}, {"step": "Boil the pasta."}]}
			]
		}
	]
}`

func TestClientSearch(t *testing.T) {
	var gotQuery, gotDiet, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recipes/complexSearch", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotDiet = r.URL.Query().Get("diet")
		gotKey = r.URL.Query().Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, "test-key", nil)
	out, err := c.Search(context.Background(), "pork", types.SearchFilters{Diet: "gluten free"}, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "pork", gotQuery)
	assert.Equal(t, "gluten free", gotDiet)
	assert.Equal(t, "test-key", gotKey)

	r := out[0]
	assert.Equal(t, "715538", r.ID)
	assert.Equal(t, "Bruschetta Style Pork & Pasta", r.Title)
	assert.InDelta(t, 521.3, r.Calories, 0.001)
	assert.Equal(t, 10, r.PrepTime)
	assert.Equal(t, 25, r.CookTime)
	assert.Equal(t, []string{"pork tenderloin", "pasta"}, r.IngredientNames())
	assert.Len(t, r.Instructions, 2)
}

func TestClientGetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recipes/715538/information", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 715538, "title": "Bruschetta Style Pork & Pasta"}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, "", nil)
	r, err := c.GetByID(context.Background(), "715538")
	require.NoError(t, err)
	assert.Equal(t, "715538", r.ID)
	assert.Equal(t, "Bruschetta Style Pork & Pasta", r.Title)
}

func TestClientWrapsFailuresAsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, "", nil)
	_, err := c.Search(context.Background(), "x", types.SearchFilters{}, 5)
	assert.ErrorIs(t, err, types.ErrOffline)

	srv.Close()
	_, err = c.Search(context.Background(), "x", types.SearchFilters{}, 5)
	assert.ErrorIs(t, err, types.ErrOffline)
}

func TestClientNewSearchCancelsPrevious(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var cancelled bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "slow" {
			select {
			case <-release:
			case <-r.Context().Done():
				mu.Lock()
				cancelled = true
				mu.Unlock()
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()
	defer close(release)

	c := catalog.NewClient(srv.URL, "", nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "slow", types.SearchFilters{}, 5)
		errCh <- err
	}()

	// Give the slow search time to reach the server before superseding it.
	time.Sleep(50 * time.Millisecond)
	_, err := c.Search(context.Background(), "fast", types.SearchFilters{}, 5)
	require.NoError(t, err)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search never returned")
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return cancelled
	}, time.Second, 10*time.Millisecond)
}

func TestClientDistinctResourcesDoNotCancelEachOther(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "title": "ok"}`))
	}))
	defer srv.Close()

	c := catalog.NewClient(srv.URL, "", nil)
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{"1", "2"} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = c.GetByID(context.Background(), id)
		}(i, id)
	}
	wg.Wait()
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}
