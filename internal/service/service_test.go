package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/repository"
)

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	db  *gorm.DB
	cfg *config.Config

	userRepo   repository.UserRepository
	subRepo    repository.SubscriptionRepository
	tagRepo    repository.TagRepository
	ingRepo    repository.IngredientRepository
	recipeRepo repository.RecipeRepository
	favRepo    repository.FavoriteRepository
	cartRepo   repository.CartRepository

	users      UserService
	subs       SubscriptionService
	catalog    CatalogService
	recipes    RecipeService
	engagement EngagementService
	shopping   ShoppingListService
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Rules: config.RulesConfig{
			MinUsernameLen:      3,
			MinCookingTime:      1,
			MaxCookingTime:      600,
			MinIngredientAmount: 1,
			MaxIngredientAmount: 10000,
			AllowSelfSubscribe:  false,
			TrueLiterals:        []string{"1", "true"},
			FalseLiterals:       []string{"0", "false"},
		},
		// no keyboard remap by default; set per test when needed
		Search: config.SearchConfig{},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Favorite{},
		&model.CartItem{},
	))

	env := &testEnv{db: db, cfg: testConfig()}
	env.userRepo = repository.NewUserRepository(db)
	env.subRepo = repository.NewSubscriptionRepository(db)
	env.tagRepo = repository.NewTagRepository(db)
	env.ingRepo = repository.NewIngredientRepository(db)
	env.recipeRepo = repository.NewRecipeRepository(db)
	env.favRepo = repository.NewFavoriteRepository(db)
	env.cartRepo = repository.NewCartRepository(db)

	env.users = NewUserService(env.cfg, env.userRepo)
	env.subs = NewSubscriptionService(env.cfg, env.subRepo, env.userRepo, env.recipeRepo)
	env.catalog = NewCatalogService(env.cfg, env.tagRepo, env.ingRepo, nil)
	env.recipes = NewRecipeService(env.cfg, env.recipeRepo, env.tagRepo, env.ingRepo, env.favRepo, env.cartRepo, env.subRepo)
	env.engagement = NewEngagementService(env.favRepo, env.cartRepo, env.recipeRepo)
	env.shopping = NewShoppingListService(env.cartRepo)
	return env
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.New().String(),
		Email:    username + "@example.com",
		Username: username,
		Password: "x",
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) tag(t *testing.T, name, slug string) *model.Tag {
	t.Helper()
	tag, err := e.catalog.CreateTag(context.Background(), name, "#49B64E", slug)
	require.NoError(t, err)
	return tag
}

func (e *testEnv) ingredient(t *testing.T, name, unit string) *model.Ingredient {
	t.Helper()
	ing, err := e.catalog.CreateIngredient(context.Background(), name, unit)
	require.NoError(t, err)
	return ing
}

func (e *testEnv) recipe(t *testing.T, author *model.User, name string, in RecipeInput) *RecipeView {
	t.Helper()
	if in.Name == "" {
		in.Name = name
	}
	if in.Text == "" {
		in.Text = "steps"
	}
	if in.CookingTime == 0 {
		in.CookingTime = 30
	}
	view, err := e.recipes.Create(context.Background(), author.ID, in)
	require.NoError(t, err)
	return view
}
