package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/repository"
)

// ShoppingListService builds the consolidated shopping list from the
// recipes in a user's cart.
type ShoppingListService interface {
	// Build returns one entry per (ingredient name, unit) with the
	// amounts summed across all cart recipes, ordered by name. An
	// empty cart is ErrEmptyCart, never an empty success list.
	Build(ctx context.Context, userID string) ([]repository.ShoppingItem, error)
	// Render produces the plain-text attachment body.
	Render(user *model.User, items []repository.ShoppingItem, now time.Time) string
}

type shoppingListService struct {
	cartRepo repository.CartRepository
}

func NewShoppingListService(cartRepo repository.CartRepository) ShoppingListService {
	return &shoppingListService{cartRepo: cartRepo}
}

func (s *shoppingListService) Build(ctx context.Context, userID string) ([]repository.ShoppingItem, error) {
	count, err := s.cartRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyCart
	}
	return s.cartRepo.SumIngredients(ctx, userID)
}

func (s *shoppingListService) Render(user *model.User, items []repository.ShoppingItem, now time.Time) string {
	var b strings.Builder
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	fmt.Fprintf(&b, "Shopping list for: %s\n\n%s\n\n", name, now.Format("2006-01-02 15:04"))
	for _, it := range items {
		fmt.Fprintf(&b, "%s: %d %s\n", it.Name, it.Amount, it.Unit)
	}
	b.WriteString("\n\nBon appetit!")
	return b.String()
}
