package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

// RecipeFilter composes the optional recipe list filters by logical AND.
// UserID is the requester; when empty (anonymous) the favorited / in-cart
// flags are ignored.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    string
	IsFavorited *bool
	IsInCart    *bool
	UserID      string
}

type RecipeRepository interface {
	// Create persists the recipe row, its tag set and its ingredient
	// lines in one transaction.
	Create(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error
	// Update rewrites the scalar fields, fully replaces the ingredient
	// line set and replaces the tag set, all in one transaction.
	Update(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Recipe, error)
	Filter(ctx context.Context, f RecipeFilter, offset, limit int) ([]*model.Recipe, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Recipe, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepository{db: db} }

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		return createLines(tx, recipe.ID, lines)
	})
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		// full replace, not a diff
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return createLines(tx, recipe.ID, lines)
	})
}

func createLines(tx *gorm.DB, recipeID string, lines []model.RecipeIngredient) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].RecipeID = recipeID
	}
	return tx.Create(&lines).Error
}

// Delete removes the recipe and everything hanging off it: ingredient
// lines, tag links, favorite and cart edges.
func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Filter(ctx context.Context, f RecipeFilter, offset, limit int) ([]*model.Recipe, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC")

	if len(f.TagSlugs) > 0 {
		// OR across slugs; DISTINCT dedupes recipes with several
		// matching tags
		q = q.Distinct("recipes.*").
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
	}
	if f.AuthorID != "" {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.UserID != "" {
		if f.IsFavorited != nil {
			sub := r.db.Model(&model.Favorite{}).Select("recipe_id").Where("user_id = ?", f.UserID)
			if *f.IsFavorited {
				q = q.Where("recipes.id IN (?)", sub)
			} else {
				q = q.Where("recipes.id NOT IN (?)", sub)
			}
		}
		if f.IsInCart != nil {
			sub := r.db.Model(&model.CartItem{}).Select("recipe_id").Where("user_id = ?", f.UserID)
			if *f.IsInCart {
				q = q.Where("recipes.id IN (?)", sub)
			} else {
				q = q.Where("recipes.id NOT IN (?)", sub)
			}
		}
	}

	var res []*model.Recipe
	err := q.Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Recipe, error) {
	var res []*model.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&res).Error
	return res, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&cnt).Error
	return cnt, err
}
