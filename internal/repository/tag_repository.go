package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	List(ctx context.Context) ([]*model.Tag, error)
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	var res []*model.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	var res []model.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}
