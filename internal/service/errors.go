package service

import (
	"errors"
	"fmt"
)

// ValidationError reports the first rule a request violated. Terminal for
// the operation; surfaced to the caller as a bad request.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string { return e.Rule }

func validationErr(format string, args ...any) error {
	return &ValidationError{Rule: fmt.Sprintf(format, args...)}
}

var (
	// ErrNotFound covers references to nonexistent users, recipes,
	// tags, ingredients and edges. Wrap with context when returning.
	ErrNotFound = errors.New("not found")

	// Uniqueness conflicts, one caller-visible message per edge kind.
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrAlreadyFavorited  = errors.New("recipe already favorited")
	ErrAlreadyInCart     = errors.New("recipe already in shopping cart")
	ErrRecipeNameTaken   = errors.New("author already has a recipe with this name")
	ErrUserExists        = errors.New("email or username already registered")

	ErrSelfSubscribe      = errors.New("cannot subscribe to yourself")
	ErrEmptyCart          = errors.New("shopping cart is empty, nothing to buy")
	ErrNotOwner           = errors.New("only the author may modify this recipe")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
