package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/repository"
)

// AuthorSummary is a followed author together with a slice of their
// recipes and the live recipe count.
type AuthorSummary struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// SubscriptionService manages the social graph.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID string) (*AuthorSummary, error)
	Unsubscribe(ctx context.Context, userID, authorID string) error
	IsSubscribed(ctx context.Context, userID, authorID string) (bool, error)
	// ListSubscriptions returns the authors userID follows, each with
	// up to recipesLimit recipes (0 means all).
	ListSubscriptions(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]AuthorSummary, error)
}

type subscriptionService struct {
	cfg        *config.Config
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewSubscriptionService(cfg *config.Config, subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) SubscriptionService {
	return &subscriptionService{cfg: cfg, subRepo: subRepo, userRepo: userRepo, recipeRepo: recipeRepo}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID string) (*AuthorSummary, error) {
	if userID == authorID && !s.cfg.Rules.AllowSelfSubscribe {
		return nil, ErrSelfSubscribe
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: author %s", ErrNotFound, authorID)
		}
		return nil, err
	}
	if err := s.subRepo.Create(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return s.summary(ctx, author, 0)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	if err := s.subRepo.Delete(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: subscription to %s", ErrNotFound, authorID)
		}
		return err
	}
	return nil
}

func (s *subscriptionService) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.subRepo.Exists(ctx, userID, authorID)
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]AuthorSummary, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	authors, err := s.subRepo.ListAuthors(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]AuthorSummary, 0, len(authors))
	for _, a := range authors {
		sum, err := s.summary(ctx, a, recipesLimit)
		if err != nil {
			return nil, err
		}
		res = append(res, *sum)
	}
	return res, nil
}

func (s *subscriptionService) summary(ctx context.Context, author *model.User, recipesLimit int) (*AuthorSummary, error) {
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	previews := make([]RecipePreview, 0, len(recipes))
	for _, r := range recipes {
		previews = append(previews, RecipePreview{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime})
	}
	return &AuthorSummary{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      previews,
		RecipesCount: count,
	}, nil
}
