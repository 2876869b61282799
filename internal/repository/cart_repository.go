package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

// ShoppingItem is one consolidated line of a shopping list: every cart
// recipe's lines grouped by (ingredient name, unit) with amounts summed.
type ShoppingItem struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Amount int    `json:"amount"`
}

type CartRepository interface {
	Create(ctx context.Context, userID, recipeID string) error
	Delete(ctx context.Context, userID, recipeID string) error
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	Count(ctx context.Context, userID string) (int64, error)
	SumIngredients(ctx context.Context, userID string) ([]ShoppingItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) Create(ctx context.Context, userID, recipeID string) error {
	ci := &model.CartItem{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Create(ci).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, recipeID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *cartRepository) Count(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Count(&cnt).Error
	return cnt, err
}

// SumIngredients groups every ingredient line of the user's cart recipes by
// (name, unit) and sums the amounts, ordered by ingredient name.
func (r *cartRepository) SumIngredients(ctx context.Context, userID string) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	return items, err
}
