package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/repository"
)

// RecipePreview is the short recipe representation returned by the
// engagement toggles and subscription listings.
type RecipePreview struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// EngagementService manages the favorite and shopping-cart edges. Adds and
// removes are plain row inserts/deletes; the composite unique index
// serializes concurrent toggles and the loser sees a conflict.
type EngagementService interface {
	AddFavorite(ctx context.Context, userID, recipeID string) (*RecipePreview, error)
	RemoveFavorite(ctx context.Context, userID, recipeID string) error
	AddToCart(ctx context.Context, userID, recipeID string) (*RecipePreview, error)
	RemoveFromCart(ctx context.Context, userID, recipeID string) error
}

type engagementService struct {
	favRepo    repository.FavoriteRepository
	cartRepo   repository.CartRepository
	recipeRepo repository.RecipeRepository
}

func NewEngagementService(favRepo repository.FavoriteRepository, cartRepo repository.CartRepository, recipeRepo repository.RecipeRepository) EngagementService {
	return &engagementService{favRepo: favRepo, cartRepo: cartRepo, recipeRepo: recipeRepo}
}

func (s *engagementService) AddFavorite(ctx context.Context, userID, recipeID string) (*RecipePreview, error) {
	return s.addEdge(ctx, userID, recipeID, s.favRepo.Create, ErrAlreadyFavorited)
}

func (s *engagementService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.removeEdge(ctx, userID, recipeID, s.favRepo.Delete, "favorite")
}

func (s *engagementService) AddToCart(ctx context.Context, userID, recipeID string) (*RecipePreview, error) {
	return s.addEdge(ctx, userID, recipeID, s.cartRepo.Create, ErrAlreadyInCart)
}

func (s *engagementService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	return s.removeEdge(ctx, userID, recipeID, s.cartRepo.Delete, "cart item")
}

type edgeOp func(ctx context.Context, userID, recipeID string) error

func (s *engagementService) addEdge(ctx context.Context, userID, recipeID string, create edgeOp, conflict error) (*RecipePreview, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, err
	}
	if err := create(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict
		}
		return nil, err
	}
	return &RecipePreview{ID: recipe.ID, Name: recipe.Name, Image: recipe.Image, CookingTime: recipe.CookingTime}, nil
}

func (s *engagementService) removeEdge(ctx context.Context, userID, recipeID string, del edgeOp, kind string) error {
	if err := del(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s for recipe %s", ErrNotFound, kind, recipeID)
		}
		return err
	}
	return nil
}
