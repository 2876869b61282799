package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngagementService_FavoriteToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	recipe := env.recipe(t, author, "soup", validInput(env, t))

	preview, err := env.engagement.AddFavorite(ctx, reader.ID, recipe.ID)
	require.NoError(t, err)
	require.Equal(t, recipe.ID, preview.ID)
	require.Equal(t, recipe.Name, preview.Name)

	_, err = env.engagement.AddFavorite(ctx, reader.ID, recipe.ID)
	require.ErrorIs(t, err, ErrAlreadyFavorited)

	require.NoError(t, env.engagement.RemoveFavorite(ctx, reader.ID, recipe.ID))
	require.ErrorIs(t, env.engagement.RemoveFavorite(ctx, reader.ID, recipe.ID), ErrNotFound)
}

func TestEngagementService_CartToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	recipe := env.recipe(t, author, "soup", validInput(env, t))

	_, err := env.engagement.AddToCart(ctx, reader.ID, recipe.ID)
	require.NoError(t, err)
	_, err = env.engagement.AddToCart(ctx, reader.ID, recipe.ID)
	require.ErrorIs(t, err, ErrAlreadyInCart)

	// the two edge kinds are independent
	_, err = env.engagement.AddFavorite(ctx, reader.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, env.engagement.RemoveFromCart(ctx, reader.ID, recipe.ID))
	require.ErrorIs(t, env.engagement.RemoveFromCart(ctx, reader.ID, recipe.ID), ErrNotFound)
}

func TestEngagementService_MissingRecipe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")

	_, err := env.engagement.AddFavorite(ctx, reader.ID, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.engagement.AddToCart(ctx, reader.ID, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
