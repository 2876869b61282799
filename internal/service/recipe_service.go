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

// IngredientAmount is one submitted ingredient line.
type IngredientAmount struct {
	ID     string `json:"id" binding:"required"`
	Amount int    `json:"amount" binding:"required"`
}

// RecipeInput carries the full recipe payload for create and update.
// Update fully replaces the ingredient-line set and the tag set.
type RecipeInput struct {
	Name        string             `json:"name" binding:"required"`
	Text        string             `json:"text" binding:"required"`
	Image       string             `json:"image"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	TagIDs      []string           `json:"tags" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
}

// IngredientLineView is an ingredient line joined with its catalog entry.
type IngredientLineView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// AuthorView is the recipe author with the live subscription flag of the
// requesting user.
type AuthorView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeView is the full recipe representation. The engagement flags are
// computed live for the requesting user, never denormalized.
type RecipeView struct {
	ID               string               `json:"id"`
	Tags             []model.Tag          `json:"tags"`
	Author           AuthorView           `json:"author"`
	Ingredients      []IngredientLineView `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

type RecipeService interface {
	Create(ctx context.Context, authorID string, in RecipeInput) (*RecipeView, error)
	// Update rewrites the recipe as one unit; requester must be the author.
	Update(ctx context.Context, recipeID, requesterID string, in RecipeInput) (*RecipeView, error)
	Delete(ctx context.Context, recipeID, requesterID string) error
	// Get returns the recipe view for requester (nil means anonymous).
	Get(ctx context.Context, recipeID string, requester *model.User) (*RecipeView, error)
	List(ctx context.Context, f repository.RecipeFilter, requester *model.User, page, pageSize int) ([]*RecipeView, error)
	// BoolFlag parses a boolean query parameter against the configured
	// literal sets; unknown literals mean "filter not supplied".
	BoolFlag(raw string) *bool
}

type recipeService struct {
	cfg        *config.Config
	recipeRepo repository.RecipeRepository
	tagRepo    repository.TagRepository
	ingRepo    repository.IngredientRepository
	favRepo    repository.FavoriteRepository
	cartRepo   repository.CartRepository
	subRepo    repository.SubscriptionRepository
}

func NewRecipeService(
	cfg *config.Config,
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingRepo repository.IngredientRepository,
	favRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	subRepo repository.SubscriptionRepository,
) RecipeService {
	return &recipeService{
		cfg:        cfg,
		recipeRepo: recipeRepo,
		tagRepo:    tagRepo,
		ingRepo:    ingRepo,
		favRepo:    favRepo,
		cartRepo:   cartRepo,
		subRepo:    subRepo,
	}
}

func (s *recipeService) Create(ctx context.Context, authorID string, in RecipeInput) (*RecipeView, error) {
	tags, lines, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Text:        in.Text,
		Image:       in.Image,
		CookingTime: in.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe, tags, lines); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}
	return s.Get(ctx, recipe.ID, &model.User{ID: authorID})
}

func (s *recipeService) Update(ctx context.Context, recipeID, requesterID string, in RecipeInput) (*RecipeView, error) {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, err
	}
	if existing.AuthorID != requesterID {
		return nil, ErrNotOwner
	}
	tags, lines, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}
	recipe := &model.Recipe{
		ID:          recipeID,
		Name:        in.Name,
		Text:        in.Text,
		Image:       in.Image,
		CookingTime: in.CookingTime,
	}
	if err := s.recipeRepo.Update(ctx, recipe, tags, lines); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}
	return s.Get(ctx, recipeID, &model.User{ID: requesterID})
}

func (s *recipeService) Delete(ctx context.Context, recipeID, requesterID string) error {
	existing, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return err
	}
	if existing.AuthorID != requesterID {
		return ErrNotOwner
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

func (s *recipeService) Get(ctx context.Context, recipeID string, requester *model.User) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %s", ErrNotFound, recipeID)
		}
		return nil, err
	}
	return s.view(ctx, recipe, requester)
}

func (s *recipeService) List(ctx context.Context, f repository.RecipeFilter, requester *model.User, page, pageSize int) ([]*RecipeView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if requester != nil {
		f.UserID = requester.ID
	} else {
		// favorited / in-cart filters are a no-op for anonymous callers
		f.UserID = ""
		f.IsFavorited = nil
		f.IsInCart = nil
	}
	recipes, err := s.recipeRepo.Filter(ctx, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		v, err := s.view(ctx, r, requester)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *recipeService) BoolFlag(raw string) *bool {
	for _, lit := range s.cfg.Rules.TrueLiterals {
		if raw == lit {
			v := true
			return &v
		}
	}
	for _, lit := range s.cfg.Rules.FalseLiterals {
		if raw == lit {
			v := false
			return &v
		}
	}
	return nil
}

// resolve validates the input against the configured rules (first
// offending rule wins) and loads the referenced tags and ingredients.
func (s *recipeService) resolve(ctx context.Context, in RecipeInput) ([]model.Tag, []model.RecipeIngredient, error) {
	rules := s.cfg.Rules
	if len(in.TagIDs) == 0 {
		return nil, nil, validationErr("at least one tag is required")
	}
	seenTags := make(map[string]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, dup := seenTags[id]; dup {
			return nil, nil, validationErr("duplicate tag %s", id)
		}
		seenTags[id] = struct{}{}
	}
	if len(in.Ingredients) == 0 {
		return nil, nil, validationErr("at least one ingredient is required")
	}
	seenIngs := make(map[string]struct{}, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, dup := seenIngs[line.ID]; dup {
			return nil, nil, validationErr("duplicate ingredient %s", line.ID)
		}
		seenIngs[line.ID] = struct{}{}
		if line.Amount < rules.MinIngredientAmount || line.Amount > rules.MaxIngredientAmount {
			return nil, nil, validationErr("ingredient amount must be between %d and %d", rules.MinIngredientAmount, rules.MaxIngredientAmount)
		}
	}
	if in.CookingTime < rules.MinCookingTime || in.CookingTime > rules.MaxCookingTime {
		return nil, nil, validationErr("cooking time must be between %d and %d minutes", rules.MinCookingTime, rules.MaxCookingTime)
	}

	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(in.TagIDs) {
		return nil, nil, fmt.Errorf("%w: one or more tags do not exist", ErrNotFound)
	}
	ids := make([]string, len(in.Ingredients))
	for i, line := range in.Ingredients {
		ids[i] = line.ID
	}
	ings, err := s.ingRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(ings) != len(ids) {
		return nil, nil, fmt.Errorf("%w: one or more ingredients do not exist", ErrNotFound)
	}

	lines := make([]model.RecipeIngredient, len(in.Ingredients))
	for i, line := range in.Ingredients {
		lines[i] = model.RecipeIngredient{IngredientID: line.ID, Amount: line.Amount}
	}
	return tags, lines, nil
}

func (s *recipeService) view(ctx context.Context, recipe *model.Recipe, requester *model.User) (*RecipeView, error) {
	v := &RecipeView{
		ID:          recipe.ID,
		Tags:        recipe.Tags,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Author: AuthorView{
			ID:        recipe.Author.ID,
			Email:     recipe.Author.Email,
			Username:  recipe.Author.Username,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		},
		Ingredients: make([]IngredientLineView, 0, len(recipe.Ingredients)),
	}
	for _, line := range recipe.Ingredients {
		v.Ingredients = append(v.Ingredients, IngredientLineView{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	if requester == nil || requester.ID == "" {
		return v, nil
	}
	fav, err := s.favRepo.Exists(ctx, requester.ID, recipe.ID)
	if err != nil {
		return nil, err
	}
	inCart, err := s.cartRepo.Exists(ctx, requester.ID, recipe.ID)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subRepo.Exists(ctx, requester.ID, recipe.AuthorID)
	if err != nil {
		return nil, err
	}
	v.IsFavorited = fav
	v.IsInShoppingCart = inCart
	v.Author.IsSubscribed = subscribed
	return v, nil
}
