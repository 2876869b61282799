package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_SelfSubscribe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")

	_, err := env.subs.Subscribe(ctx, alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrSelfSubscribe)

	// deployments may allow it
	env.cfg.Rules.AllowSelfSubscribe = true
	_, err = env.subs.Subscribe(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
}

func TestSubscriptionService_SubscribeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	_, err := env.subs.Subscribe(ctx, alice.ID, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	sum, err := env.subs.Subscribe(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, sum.ID)
	require.True(t, sum.IsSubscribed)

	_, err = env.subs.Subscribe(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrAlreadySubscribed)

	ok, err := env.subs.IsSubscribed(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, ok)
	// edges are directed
	ok, err = env.subs.IsSubscribed(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, env.subs.Unsubscribe(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, env.subs.Unsubscribe(ctx, alice.ID, bob.ID), ErrNotFound)
}

func TestSubscriptionService_ListWithRecipesLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	tag := env.tag(t, "dinner", "dinner")
	salt := env.ingredient(t, "salt", "g")
	for _, name := range []string{"soup", "bread", "stew"} {
		env.recipe(t, bob, name, RecipeInput{
			TagIDs:      []string{tag.ID},
			Ingredients: []IngredientAmount{{ID: salt.ID, Amount: 5}},
		})
	}

	_, err := env.subs.Subscribe(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	sums, err := env.subs.ListSubscriptions(ctx, alice.ID, 1, 10, 2)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	require.Len(t, sums[0].Recipes, 2)
	require.EqualValues(t, 3, sums[0].RecipesCount)

	// zero limit means all recipes
	sums, err = env.subs.ListSubscriptions(ctx, alice.ID, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, sums[0].Recipes, 3)
}
