package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/recipehub/internal/model"
)

const (
	tagsKey        = "catalog:tags"
	ingredientsKey = "catalog:ingredients"
)

// Catalog caches the static reference data (tags, the full ingredient
// list) in Redis. Cache errors are swallowed: the store is always the
// source of truth and a miss only costs one query.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

func (c *Catalog) GetTags(ctx context.Context) ([]*model.Tag, bool) {
	return get[model.Tag](c, ctx, tagsKey)
}

func (c *Catalog) SetTags(ctx context.Context, tags []*model.Tag) {
	set(c, ctx, tagsKey, tags)
}

func (c *Catalog) GetIngredients(ctx context.Context) ([]*model.Ingredient, bool) {
	return get[model.Ingredient](c, ctx, ingredientsKey)
}

func (c *Catalog) SetIngredients(ctx context.Context, ings []*model.Ingredient) {
	set(c, ctx, ingredientsKey, ings)
}

// Invalidate drops both catalog keys; call after seeding.
func (c *Catalog) Invalidate(ctx context.Context) {
	_ = c.rdb.Del(ctx, tagsKey, ingredientsKey).Err()
}

func get[T any](c *Catalog, ctx context.Context, key string) ([]*T, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out []*T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func set[T any](c *Catalog, ctx context.Context, key string, items []*T) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}
