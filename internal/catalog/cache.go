package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
)

const (
	recipeKeyPrefix  = "recipe:"
	defaultRecipeTTL = 24 * time.Hour
)

// Cache is the Redis-backed recipe cache collaborator, keyed by recipe id.
// Misses and Redis failures both return (nil, nil); the caller falls through
// to the catalog.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(client *redis.Client, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: defaultRecipeTTL, logger: logger}
}

// GetByID returns the cached recipe or nil on miss.
func (c *Cache) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	data, err := c.client.Get(ctx, recipeKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("recipe cache read failed", zap.String("id", id), zap.Error(err))
		}
		return nil, nil
	}
	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		c.logger.Warn("dropping corrupt cache entry", zap.String("id", id), zap.Error(err))
		c.Remove(ctx, id)
		return nil, nil
	}
	return &recipe, nil
}

// Put stores the recipe under its id with the cache TTL. Best effort.
func (c *Cache) Put(ctx context.Context, recipe *models.Recipe) {
	data, err := json.Marshal(recipe)
	if err != nil {
		c.logger.Error("marshal recipe for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, recipeKeyPrefix+recipe.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("recipe cache write failed", zap.String("id", recipe.ID), zap.Error(err))
	}
}

// Remove evicts a recipe.
func (c *Cache) Remove(ctx context.Context, id string) {
	if err := c.client.Del(ctx, recipeKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("recipe cache delete failed", zap.String("id", id), zap.Error(err))
	}
}
