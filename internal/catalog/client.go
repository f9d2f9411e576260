// Package catalog talks to the hosted recipe API and normalizes its
// responses. A Redis cache fronts detail lookups and a static mock dataset
// serves the offline path with the same filter semantics.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

const defaultTimeout = 10 * time.Second

// Client is the recipe catalog collaborator. In-flight requests are tracked
// per logical resource (the search query stream, each recipe id) and
// cancelled when superseded by a newer request for the same resource.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]*flight
}

type flight struct {
	cancel context.CancelFunc
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: defaultTimeout},
		logger:   logger,
		inFlight: make(map[string]*flight),
	}
}

type searchResponse struct {
	Results []recipePayload `json:"results"`
}

type recipePayload struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Image          string  `json:"image"`
	Servings       int     `json:"servings"`
	ReadyInMinutes int     `json:"readyInMinutes"`
	PreparationMin int     `json:"preparationMinutes"`
	CookingMinutes int     `json:"cookingMinutes"`
	SourceURL      string  `json:"sourceUrl"`
	SourceName     string  `json:"sourceName"`
	DishTypes      []string `json:"dishTypes"`
	Diets          []string `json:"diets"`
	Nutrition      struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"nutrients"`
	} `json:"nutrition"`
	ExtendedIngredients []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
}

// Search queries the catalog. A new search supersedes and cancels the
// previous one.
func (c *Client) Search(ctx context.Context, query string, filters types.SearchFilters, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(limit))
	params.Set("addRecipeNutrition", "true")
	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	if filters.MaxCalories > 0 {
		params.Set("maxCalories", strconv.FormatFloat(filters.MaxCalories, 'f', -1, 64))
	}

	var resp searchResponse
	if err := c.get(ctx, "search", "/recipes/complexSearch", params, &resp); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(resp.Results))
	for _, p := range resp.Results {
		recipes = append(recipes, normalize(p))
	}
	return recipes, nil
}

// GetByID fetches full recipe detail. A newer fetch for the same id cancels
// the one in flight.
func (c *Client) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")

	var p recipePayload
	if err := c.get(ctx, "recipe:"+id, "/recipes/"+url.PathEscape(id)+"/information", params, &p); err != nil {
		return nil, err
	}
	r := normalize(p)
	return &r, nil
}

// get issues one API call under the resource's cancellation slot.
func (c *Client) get(ctx context.Context, resource, path string, params url.Values, out interface{}) error {
	ctx, cancel := context.WithCancel(ctx)
	f := c.supersede(resource, cancel)
	defer c.release(resource, f)

	if c.apiKey != "" {
		params.Set("apiKey", c.apiKey)
	}
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", types.ErrOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: catalog returned %d", types.ErrOffline, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// supersede cancels any in-flight request for the resource and installs this
// one in its slot.
func (c *Client) supersede(resource string, cancel context.CancelFunc) *flight {
	f := &flight{cancel: cancel}
	c.mu.Lock()
	if prev, ok := c.inFlight[resource]; ok {
		prev.cancel()
	}
	c.inFlight[resource] = f
	c.mu.Unlock()
	return f
}

// release frees the slot unless a newer request already took it over.
func (c *Client) release(resource string, f *flight) {
	c.mu.Lock()
	if c.inFlight[resource] == f {
		delete(c.inFlight, resource)
	}
	c.mu.Unlock()
	f.cancel()
}

func normalize(p recipePayload) models.Recipe {
	r := models.Recipe{
		ID:             strconv.FormatInt(p.ID, 10),
		Title:          p.Title,
		Image:          p.Image,
		Servings:       p.Servings,
		ReadyInMinutes: p.ReadyInMinutes,
		PrepTime:       p.PreparationMin,
		CookTime:       p.CookingMinutes,
		SourceURL:      p.SourceURL,
		SourceName:     p.SourceName,
		DishTypes:      models.JSONBStringArray(p.DishTypes),
		Diets:          models.JSONBStringArray(p.Diets),
	}

	for _, n := range p.Nutrition.Nutrients {
		r.Nutrients = append(r.Nutrients, models.Nutrient{Name: n.Name, Amount: n.Amount, Unit: n.Unit})
		if n.Name == "Calories" {
			r.Calories = n.Amount
		}
	}
	for _, ing := range p.ExtendedIngredients {
		r.Ingredients = append(r.Ingredients, models.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	for _, block := range p.AnalyzedInstructions {
		for _, step := range block.Steps {
			r.Instructions = append(r.Instructions, step.Step)
		}
	}
	return r
}
