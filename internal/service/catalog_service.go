package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/cache"
	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/repository"
)

var hexColorRe = regexp.MustCompile(`^[0-9a-fA-F]{3}(?:[0-9a-fA-F]{3})?$`)

// CatalogService serves the static reference data: tags and the
// ingredient catalog, including ingredient name search.
type CatalogService interface {
	ListTags(ctx context.Context) ([]*model.Tag, error)
	GetTag(ctx context.Context, id string) (*model.Tag, error)
	CreateTag(ctx context.Context, name, color, slug string) (*model.Tag, error)
	ListIngredients(ctx context.Context) ([]*model.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	CreateIngredient(ctx context.Context, name, unit string) (*model.Ingredient, error)
	// SearchIngredients is a prefix-priority substring search: entries
	// whose name starts with the normalized query come first, then the
	// remaining entries containing it. Not a ranked full-text search.
	SearchIngredients(ctx context.Context, rawQuery string) ([]*model.Ingredient, error)
}

type catalogService struct {
	cfg     *config.Config
	tagRepo repository.TagRepository
	ingRepo repository.IngredientRepository
	catalog *cache.Catalog // optional
}

func NewCatalogService(cfg *config.Config, tagRepo repository.TagRepository, ingRepo repository.IngredientRepository, catalog *cache.Catalog) CatalogService {
	return &catalogService{cfg: cfg, tagRepo: tagRepo, ingRepo: ingRepo, catalog: catalog}
}

func (s *catalogService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	if s.catalog != nil {
		if tags, ok := s.catalog.GetTags(ctx); ok {
			return tags, nil
		}
	}
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.catalog != nil {
		s.catalog.SetTags(ctx, tags)
	}
	return tags, nil
}

func (s *catalogService) GetTag(ctx context.Context, id string) (*model.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tag %s", ErrNotFound, id)
		}
		return nil, err
	}
	return tag, nil
}

func (s *catalogService) CreateTag(ctx context.Context, name, color, slug string) (*model.Tag, error) {
	normalized, err := NormalizeColor(color)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, validationErr("tag name is required")
	}
	if slug == "" {
		return nil, validationErr("tag slug is required")
	}
	tag := &model.Tag{Name: name, Color: normalized, Slug: slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	return tag, nil
}

func (s *catalogService) ListIngredients(ctx context.Context) ([]*model.Ingredient, error) {
	if s.catalog != nil {
		if ings, ok := s.catalog.GetIngredients(ctx); ok {
			return ings, nil
		}
	}
	ings, err := s.ingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.catalog != nil {
		s.catalog.SetIngredients(ctx, ings)
	}
	return ings, nil
}

func (s *catalogService) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	ing, err := s.ingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, id)
		}
		return nil, err
	}
	return ing, nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, name, unit string) (*model.Ingredient, error) {
	if name == "" {
		return nil, validationErr("ingredient name is required")
	}
	if unit == "" {
		return nil, validationErr("measurement unit is required")
	}
	ing := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.ingRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	return ing, nil
}

func (s *catalogService) SearchIngredients(ctx context.Context, rawQuery string) ([]*model.Ingredient, error) {
	if rawQuery == "" {
		return s.ListIngredients(ctx)
	}
	q := s.normalizeQuery(rawQuery)
	prefix, err := s.ingRepo.SearchPrefix(ctx, q)
	if err != nil {
		return nil, err
	}
	contains, err := s.ingRepo.SearchContains(ctx, q)
	if err != nil {
		return nil, err
	}
	return append(prefix, contains...), nil
}

// normalizeQuery decodes percent-encoded queries; anything else is assumed
// to be typed on the wrong keyboard layout and remapped through the
// configured layout pair. The result is lowercased.
func (s *catalogService) normalizeQuery(raw string) string {
	if strings.HasPrefix(raw, "%") {
		if dec, err := url.QueryUnescape(raw); err == nil {
			raw = dec
		}
	} else {
		raw = transliterate(raw, s.cfg.Search.LayoutFrom, s.cfg.Search.LayoutTo)
	}
	return strings.ToLower(raw)
}

func transliterate(s, from, to string) string {
	mapping := make(map[rune]rune)
	src := []rune(from)
	dst := []rune(to)
	for i := 0; i < len(src) && i < len(dst); i++ {
		mapping[src[i]] = dst[i]
	}
	var b strings.Builder
	for _, r := range s {
		if m, ok := mapping[r]; ok {
			b.WriteRune(m)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeColor accepts 3- or 6-digit hex with or without the leading
// "#" and returns the canonical "#"-prefixed lowercase form.
func NormalizeColor(color string) (string, error) {
	c := strings.TrimPrefix(color, "#")
	if !hexColorRe.MatchString(c) {
		return "", validationErr("color %q must be 3 or 6 hex digits", color)
	}
	return "#" + strings.ToLower(c), nil
}
