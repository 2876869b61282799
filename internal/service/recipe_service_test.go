package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/recipehub/internal/repository"
)

func validInput(env *testEnv, t *testing.T) RecipeInput {
	tag := env.tag(t, "dinner", "dinner")
	salt := env.ingredient(t, "salt", "g")
	return RecipeInput{
		Name:        "soup",
		Text:        "steps",
		CookingTime: 30,
		TagIDs:      []string{tag.ID},
		Ingredients: []IngredientAmount{{ID: salt.ID, Amount: 5}},
	}
}

func TestRecipeService_ValidationRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	base := validInput(env, t)

	cases := []struct {
		name   string
		mutate func(in *RecipeInput)
		rule   string
	}{
		{"no tags", func(in *RecipeInput) { in.TagIDs = nil }, "at least one tag is required"},
		{"duplicate tag", func(in *RecipeInput) { in.TagIDs = append(in.TagIDs, in.TagIDs[0]) }, "duplicate tag " + base.TagIDs[0]},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }, "at least one ingredient is required"},
		{"duplicate ingredient", func(in *RecipeInput) {
			in.Ingredients = append(in.Ingredients, in.Ingredients[0])
		}, "duplicate ingredient " + base.Ingredients[0].ID},
		{"amount too small", func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }, "ingredient amount must be between 1 and 10000"},
		{"amount too large", func(in *RecipeInput) { in.Ingredients[0].Amount = 10001 }, "ingredient amount must be between 1 and 10000"},
		{"cooking time too small", func(in *RecipeInput) { in.CookingTime = 0 }, "cooking time must be between 1 and 600 minutes"},
		{"cooking time too large", func(in *RecipeInput) { in.CookingTime = 601 }, "cooking time must be between 1 and 600 minutes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			in.TagIDs = append([]string(nil), base.TagIDs...)
			in.Ingredients = append([]IngredientAmount(nil), base.Ingredients...)
			tc.mutate(&in)

			_, err := env.recipes.Create(ctx, author.ID, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.rule, verr.Rule)
		})
	}
}

func TestRecipeService_UnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	base := validInput(env, t)

	in := base
	in.TagIDs = []string{"missing-tag"}
	_, err := env.recipes.Create(ctx, author.ID, in)
	require.ErrorIs(t, err, ErrNotFound)

	in = base
	in.Ingredients = []IngredientAmount{{ID: "missing-ing", Amount: 5}}
	_, err = env.recipes.Create(ctx, author.ID, in)
	require.ErrorIs(t, err, ErrNotFound)

	// nothing was written by the failed attempts
	got, err := env.recipes.List(ctx, repository.RecipeFilter{}, nil, 1, 50)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRecipeService_NamePerAuthorConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	other := env.user(t, "other")
	in := validInput(env, t)

	_, err := env.recipes.Create(ctx, author.ID, in)
	require.NoError(t, err)

	_, err = env.recipes.Create(ctx, author.ID, in)
	require.ErrorIs(t, err, ErrRecipeNameTaken)

	// same name under another author is allowed
	_, err = env.recipes.Create(ctx, other.ID, in)
	require.NoError(t, err)
}

func TestRecipeService_UpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	intruder := env.user(t, "intruder")
	in := validInput(env, t)

	created, err := env.recipes.Create(ctx, author.ID, in)
	require.NoError(t, err)

	_, err = env.recipes.Update(ctx, created.ID, intruder.ID, in)
	require.ErrorIs(t, err, ErrNotOwner)
	require.ErrorIs(t, env.recipes.Delete(ctx, created.ID, intruder.ID), ErrNotOwner)

	_, err = env.recipes.Update(ctx, "missing", author.ID, in)
	require.ErrorIs(t, err, ErrNotFound)

	in.Name = "renamed"
	in.CookingTime = 45
	updated, err := env.recipes.Update(ctx, created.ID, author.ID, in)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Name)
	require.Equal(t, 45, updated.CookingTime)

	require.NoError(t, env.recipes.Delete(ctx, created.ID, author.ID))
	_, err = env.recipes.Get(ctx, created.ID, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeService_LiveFlagsPerRequester(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.user(t, "author")
	reader := env.user(t, "reader")
	in := validInput(env, t)

	created, err := env.recipes.Create(ctx, author.ID, in)
	require.NoError(t, err)

	_, err = env.engagement.AddFavorite(ctx, reader.ID, created.ID)
	require.NoError(t, err)
	_, err = env.subs.Subscribe(ctx, reader.ID, author.ID)
	require.NoError(t, err)

	got, err := env.recipes.Get(ctx, created.ID, reader)
	require.NoError(t, err)
	require.True(t, got.IsFavorited)
	require.False(t, got.IsInShoppingCart)
	require.True(t, got.Author.IsSubscribed)

	// flags are per requester, the author sees their own view
	got, err = env.recipes.Get(ctx, created.ID, author)
	require.NoError(t, err)
	require.False(t, got.IsFavorited)
	require.False(t, got.Author.IsSubscribed)

	// anonymous requesters get bare views and engagement filters are ignored
	got, err = env.recipes.Get(ctx, created.ID, nil)
	require.NoError(t, err)
	require.False(t, got.IsFavorited)

	tr := true
	views, err := env.recipes.List(ctx, repository.RecipeFilter{IsFavorited: &tr}, nil, 1, 50)
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestRecipeService_BoolFlag(t *testing.T) {
	env := newTestEnv(t)

	for _, lit := range []string{"1", "true"} {
		v := env.recipes.BoolFlag(lit)
		require.NotNil(t, v)
		require.True(t, *v)
	}
	for _, lit := range []string{"0", "false"} {
		v := env.recipes.BoolFlag(lit)
		require.NotNil(t, v)
		require.False(t, *v)
	}
	require.Nil(t, env.recipes.BoolFlag("yes"))
	require.Nil(t, env.recipes.BoolFlag(""))
}
