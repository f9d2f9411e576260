package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abdelelgendy/mealmind/backend/internal/catalog"
	"github.com/abdelelgendy/mealmind/backend/internal/fallback"
	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/testhelpers"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// stubCatalog is a scriptable CatalogClient.
type stubCatalog struct {
	recipes []models.Recipe
	err     error
	calls   int
}

func (s *stubCatalog) Search(_ context.Context, _ string, _ types.SearchFilters, _ int) ([]models.Recipe, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*models.Recipe, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.recipes {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, types.ErrNotFound
}

// fakeCache is an in-memory RecipeCache.
type fakeCache struct {
	entries map[string]*models.Recipe
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.Recipe)}
}

func (c *fakeCache) GetByID(_ context.Context, id string) (*models.Recipe, error) {
	if r, ok := c.entries[id]; ok {
		c.hits++
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (c *fakeCache) Put(_ context.Context, recipe *models.Recipe) {
	cp := *recipe
	c.entries[recipe.ID] = &cp
}

func (c *fakeCache) Remove(_ context.Context, id string) {
	delete(c.entries, id)
}

type recipeFixture struct {
	db    *gorm.DB
	live  *stubCatalog
	cache *fakeCache
	fb    *fallback.Controller
	store *store.GormStore
	svc   *service.RecipeService
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	live := &stubCatalog{}
	cache := newFakeCache()
	fb := fallback.NewController(nil)
	fb.SetCredentials(true)
	st := store.NewGormStore(db, nil)
	svc := service.NewRecipeService(db, live, catalog.NewMock(), cache, fb, st, nil)
	return &recipeFixture{db: db, live: live, cache: cache, fb: fb, store: st, svc: svc}
}

func catalogRecipe(id, title string, calories float64, ingredients ...string) models.Recipe {
	r := models.Recipe{ID: id, Title: title, Calories: calories}
	for _, name := range ingredients {
		r.Ingredients = append(r.Ingredients, models.Ingredient{Name: name})
	}
	return r
}

func TestSearchRemotePathPersistsLocally(t *testing.T) {
	f := newRecipeFixture(t)
	f.live.recipes = []models.Recipe{
		catalogRecipe("100", "Chicken Soup", 400, "chicken", "carrot"),
	}

	out, err := f.svc.Search(context.Background(), nil, "chicken", types.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "100", out[0].ID)

	// The fetched recipe landed in the local table.
	var count int64
	require.NoError(t, f.db.Model(&models.Recipe{}).Where("id = ?", "100").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSearchSubstitutesMockWhenRemoteFails(t *testing.T) {
	f := newRecipeFixture(t)
	f.live.err = errors.New("catalog unreachable")

	out, err := f.svc.Search(context.Background(), nil, "chicken", types.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "mock-1", out[0].ID)
	assert.Equal(t, 1, f.live.calls, "remote attempted once before substitution")
}

func TestSearchPrefersLocalTableOverMock(t *testing.T) {
	f := newRecipeFixture(t)
	f.live.recipes = []models.Recipe{
		catalogRecipe("100", "Chicken Soup", 400, "chicken"),
	}

	// A first online search seeds the local table.
	_, err := f.svc.Search(context.Background(), nil, "chicken", types.SearchFilters{}, 10)
	require.NoError(t, err)

	// Then the catalog goes away; the persisted recipe answers, not the mock.
	f.live.err = errors.New("catalog unreachable")
	out, err := f.svc.Search(context.Background(), nil, "chicken", types.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "100", out[0].ID)
}

func TestSearchShortCircuitsWithoutCredentials(t *testing.T) {
	f := newRecipeFixture(t)
	f.fb.SetCredentials(false)
	f.live.recipes = []models.Recipe{catalogRecipe("100", "Chicken Soup", 400, "chicken")}

	out, err := f.svc.Search(context.Background(), nil, "chicken", types.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "mock-1", out[0].ID)
	assert.Zero(t, f.live.calls, "remote must not be attempted")
}

func TestSearchRanksAgainstPantryAndProfile(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	diet := "vegetarian"
	allergies := "nuts"
	_, err := f.store.UpsertProfile(ctx, userID, &types.UpdateProfileRequest{
		Diet: &diet, Allergies: &allergies,
	})
	require.NoError(t, err)
	require.NoError(t, f.store.UpsertPantry(ctx, userID, []models.PantryItem{
		{ID: uuid.New(), UserID: userID, Name: "lentils", Quantity: 1},
		{ID: uuid.New(), UserID: userID, Name: "onion", Quantity: 2},
	}))

	nutty := catalogRecipe("1", "Peanut Stir Fry", 500, "peanut butter", "rice")
	nutty.Diets = models.JSONBStringArray{"vegetarian"}
	lentil := catalogRecipe("2", "Lentil Soup", 450, "lentils", "onion")
	lentil.Diets = models.JSONBStringArray{"vegetarian"}
	steak := catalogRecipe("3", "Steak", 700, "beef")
	f.live.recipes = []models.Recipe{nutty, lentil, steak}

	out, err := f.svc.Search(ctx, &userID, "", types.SearchFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// Fully pantry-compatible diet match first, off-diet next, allergen last.
	assert.Equal(t, "2", out[0].ID)
	assert.True(t, out[0].PantryCompatible)
	assert.Equal(t, "3", out[1].ID)
	assert.Equal(t, "1", out[2].ID)
	assert.True(t, out[2].ContainsAllergens)
}

func TestGetByIDCacheFirst(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	f.live.recipes = []models.Recipe{catalogRecipe("100", "Chicken Soup", 400, "chicken")}

	r, err := f.svc.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Soup", r.Title)
	assert.Equal(t, 1, f.live.calls)

	// Second lookup is served from the cache without touching the catalog.
	r, err = f.svc.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Soup", r.Title)
	assert.Equal(t, 1, f.live.calls)
	assert.Equal(t, 1, f.cache.hits)
}

func TestGetByIDFallsBackToLocalTable(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	f.live.recipes = []models.Recipe{catalogRecipe("100", "Chicken Soup", 400, "chicken")}

	_, err := f.svc.GetByID(ctx, "100")
	require.NoError(t, err)

	// Catalog down, cache cleared: the persisted copy still answers.
	f.live.err = errors.New("catalog unreachable")
	f.cache.Remove(ctx, "100")

	r, err := f.svc.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "Chicken Soup", r.Title)
}

func TestGetByIDFallsBackToMock(t *testing.T) {
	f := newRecipeFixture(t)
	f.live.err = errors.New("catalog unreachable")

	r, err := f.svc.GetByID(context.Background(), "mock-2")
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian Lentil Curry", r.Title)

	_, err = f.svc.GetByID(context.Background(), "unknown")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
