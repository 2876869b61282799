package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

type IngredientRepository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	List(ctx context.Context) ([]*model.Ingredient, error)
	GetByID(ctx context.Context, id string) (*model.Ingredient, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Ingredient, error)
	// SearchPrefix returns catalog entries whose name starts with q,
	// in catalog (name) order. Matching is case-insensitive.
	SearchPrefix(ctx context.Context, q string) ([]*model.Ingredient, error)
	// SearchContains returns entries that contain q somewhere past the
	// first position, excluding everything SearchPrefix already matched.
	SearchContains(ctx context.Context, q string) ([]*model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ing *model.Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepository) List(ctx context.Context) ([]*model.Ingredient, error) {
	var res []*model.Ingredient
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*model.Ingredient, error) {
	var ing model.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Ingredient, error) {
	var res []model.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (r *ingredientRepository) SearchPrefix(ctx context.Context, q string) ([]*model.Ingredient, error) {
	var res []*model.Ingredient
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", q+"%").
		Order("name").
		Find(&res).Error
	return res, err
}

func (r *ingredientRepository) SearchContains(ctx context.Context, q string) ([]*model.Ingredient, error) {
	var res []*model.Ingredient
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? AND LOWER(name) NOT LIKE ?", "%"+q+"%", q+"%").
		Order("name").
		Find(&res).Error
	return res, err
}
