package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, userID, authorID string) error
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	ListAuthors(ctx context.Context, userID string, offset, limit int) ([]*model.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create inserts the edge; a duplicate pair surfaces as
// gorm.ErrDuplicatedKey via the unique index.
func (r *subscriptionRepository) Create(ctx context.Context, userID, authorID string) error {
	s := &model.Subscription{ID: uuid.New().String(), UserID: userID, AuthorID: authorID}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, authorID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID string, offset, limit int) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("users.*").
		Joins("JOIN users ON users.id = subscriptions.author_id").
		Where("subscriptions.user_id = ?", userID).
		Order("subscriptions.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&res).Error
	return res, err
}
