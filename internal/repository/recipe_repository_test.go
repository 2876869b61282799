package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/internal/model"
)

func TestRecipeRepository_CreatePersistsAllLines(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	tag := seedTag(t, db, "dinner", "dinner")
	salt := seedIngredient(t, db, "salt", "g")
	flour := seedIngredient(t, db, "flour", "g")

	recipe := seedRecipe(t, db, repo, author, "bread", []model.Tag{*tag}, []model.RecipeIngredient{
		{IngredientID: salt.ID, Amount: 5},
		{IngredientID: flour.ID, Amount: 300},
	})

	got, err := repo.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	require.Len(t, got.Tags, 1)
	require.Equal(t, author.ID, got.Author.ID)
}

func TestRecipeRepository_UpdateReplacesLineSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	tag1 := seedTag(t, db, "dinner", "dinner")
	tag2 := seedTag(t, db, "lunch", "lunch")
	salt := seedIngredient(t, db, "salt", "g")
	flour := seedIngredient(t, db, "flour", "g")
	sugar := seedIngredient(t, db, "sugar", "g")

	recipe := seedRecipe(t, db, repo, author, "bread", []model.Tag{*tag1}, []model.RecipeIngredient{
		{IngredientID: salt.ID, Amount: 5},
		{IngredientID: flour.ID, Amount: 300},
	})

	updated := &model.Recipe{ID: recipe.ID, Name: "sweet bread", Text: "new steps", CookingTime: 45}
	err := repo.Update(ctx, updated, []model.Tag{*tag2}, []model.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 50},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.Equal(t, "sweet bread", got.Name)
	require.Equal(t, 45, got.CookingTime)
	// old lines must be gone, not merged
	require.Len(t, got.Ingredients, 1)
	require.Equal(t, sugar.ID, got.Ingredients[0].IngredientID)
	require.Len(t, got.Tags, 1)
	require.Equal(t, tag2.ID, got.Tags[0].ID)

	var lineCount int64
	require.NoError(t, db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&lineCount).Error)
	require.EqualValues(t, 1, lineCount)
}

func TestRecipeRepository_DuplicateNamePerAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	tag := seedTag(t, db, "dinner", "dinner")
	salt := seedIngredient(t, db, "salt", "g")
	lines := func() []model.RecipeIngredient {
		return []model.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}}
	}

	seedRecipe(t, db, repo, author, "soup", []model.Tag{*tag}, lines())

	dup := &model.Recipe{AuthorID: author.ID, Name: "soup", Text: "again", CookingTime: 10}
	err := repo.Create(ctx, dup, []model.Tag{*tag}, lines())
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// a failed create leaves no partial rows behind
	var lineCount int64
	require.NoError(t, db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", dup.ID).Count(&lineCount).Error)
	require.Zero(t, lineCount)

	// same name under a different author is fine
	ok := &model.Recipe{AuthorID: other.ID, Name: "soup", Text: "mine", CookingTime: 10}
	require.NoError(t, repo.Create(ctx, ok, []model.Tag{*tag}, lines()))
}

func TestRecipeRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	favRepo := NewFavoriteRepository(db)
	cartRepo := NewCartRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author")
	tag := seedTag(t, db, "dinner", "dinner")
	salt := seedIngredient(t, db, "salt", "g")
	recipe := seedRecipe(t, db, repo, author, "soup", []model.Tag{*tag},
		[]model.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}})

	require.NoError(t, favRepo.Create(ctx, author.ID, recipe.ID))
	require.NoError(t, cartRepo.Create(ctx, author.ID, recipe.ID))

	require.NoError(t, repo.Delete(ctx, recipe.ID))
	require.ErrorIs(t, repo.Delete(ctx, recipe.ID), gorm.ErrRecordNotFound)

	for _, m := range []any{&model.RecipeIngredient{}, &model.Favorite{}, &model.CartItem{}} {
		var cnt int64
		require.NoError(t, db.Model(m).Where("recipe_id = ?", recipe.ID).Count(&cnt).Error)
		require.Zero(t, cnt)
	}
}

func TestRecipeRepository_Filter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	favRepo := NewFavoriteRepository(db)
	cartRepo := NewCartRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	dinner := seedTag(t, db, "dinner", "dinner")
	lunch := seedTag(t, db, "lunch", "lunch")
	salt := seedIngredient(t, db, "salt", "g")
	lines := func() []model.RecipeIngredient {
		return []model.RecipeIngredient{{IngredientID: salt.ID, Amount: 5}}
	}

	soup := seedRecipe(t, db, repo, alice, "soup", []model.Tag{*dinner, *lunch}, lines())
	bread := seedRecipe(t, db, repo, alice, "bread", []model.Tag{*lunch}, lines())
	stew := seedRecipe(t, db, repo, bob, "stew", []model.Tag{*dinner}, lines())

	require.NoError(t, favRepo.Create(ctx, bob.ID, soup.ID))
	require.NoError(t, cartRepo.Create(ctx, bob.ID, bread.ID))

	ids := func(rs []*model.Recipe) map[string]bool {
		m := make(map[string]bool, len(rs))
		for _, r := range rs {
			m[r.ID] = true
		}
		return m
	}

	// OR across tag slugs, recipes with several matching tags appear once
	got, err := repo.Filter(ctx, RecipeFilter{TagSlugs: []string{"dinner", "lunch"}}, 0, 50)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// author AND tag compose
	got, err = repo.Filter(ctx, RecipeFilter{TagSlugs: []string{"dinner"}, AuthorID: alice.ID}, 0, 50)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{soup.ID: true}, ids(got))

	// favorited=true restricts, favorited=false excludes
	tr, fa := true, false
	got, err = repo.Filter(ctx, RecipeFilter{IsFavorited: &tr, UserID: bob.ID}, 0, 50)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{soup.ID: true}, ids(got))

	got, err = repo.Filter(ctx, RecipeFilter{IsFavorited: &fa, UserID: bob.ID}, 0, 50)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{bread.ID: true, stew.ID: true}, ids(got))

	got, err = repo.Filter(ctx, RecipeFilter{IsInCart: &tr, UserID: bob.ID}, 0, 50)
	require.NoError(t, err)
	require.Equal(t, map[string]bool{bread.ID: true}, ids(got))

	// anonymous requester: flags ignored upstream, empty filter returns all
	got, err = repo.Filter(ctx, RecipeFilter{}, 0, 50)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestIngredientRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	seedIngredient(t, db, "Apple pie", "pc")
	seedIngredient(t, db, "Pineapple", "pc")
	seedIngredient(t, db, "Grape", "pc")

	prefix, err := repo.SearchPrefix(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, prefix, 1)
	require.Equal(t, "Apple pie", prefix[0].Name)

	contains, err := repo.SearchContains(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, contains, 1)
	require.Equal(t, "Pineapple", contains[0].Name)
}
