package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

type FavoriteRepository interface {
	Create(ctx context.Context, userID, recipeID string) error
	Delete(ctx context.Context, userID, recipeID string) error
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository { return &favoriteRepository{db: db} }

func (r *favoriteRepository) Create(ctx context.Context, userID, recipeID string) error {
	f := &model.Favorite{ID: uuid.New().String(), UserID: userID, RecipeID: recipeID}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, recipeID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
