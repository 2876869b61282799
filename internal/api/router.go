package api

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/recipehub/config"
	_ "github.com/d60-Lab/recipehub/docs"
	"github.com/d60-Lab/recipehub/internal/api/handler"
	"github.com/d60-Lab/recipehub/internal/api/middleware"
	"github.com/d60-Lab/recipehub/internal/repository"
)

// NewRouter assembles the gin engine. Authentication is resolved by
// middleware; every handler receives the requesting user (or nil)
// explicitly through the context helpers.
func NewRouter(cfg *config.Config, h *handler.Handler, userRepo repository.UserRepository) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware("recipehub"))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	optionalAuth := middleware.Auth(cfg, userRepo, false)
	requireAuth := middleware.Auth(cfg, userRepo, true)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth", middleware.RateLimit(rate.Every(time.Second), 5))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := v1.Group("/users")
	{
		users.GET("", optionalAuth, h.ListUsers)
		users.GET("/me", requireAuth, h.Me)
		users.GET("/subscriptions", requireAuth, h.ListSubscriptions)
		users.POST("/set_password", requireAuth, h.SetPassword)
		users.GET("/:user_id", optionalAuth, h.GetUser)
		users.POST("/:user_id/subscribe", requireAuth, h.Subscribe)
		users.DELETE("/:user_id/subscribe", requireAuth, h.Unsubscribe)
	}

	v1.GET("/tags", h.ListTags)
	v1.GET("/tags/:tag_id", h.GetTag)
	v1.GET("/ingredients", h.ListIngredients)
	v1.GET("/ingredients/:ingredient_id", h.GetIngredient)

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", optionalAuth, h.ListRecipes)
		recipes.POST("", requireAuth, h.CreateRecipe)
		recipes.GET("/download_shopping_cart", requireAuth, h.DownloadShoppingCart)
		recipes.GET("/:recipe_id", optionalAuth, h.GetRecipe)
		recipes.PATCH("/:recipe_id", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/:recipe_id", requireAuth, h.DeleteRecipe)
		recipes.POST("/:recipe_id/favorite", requireAuth, h.AddFavorite)
		recipes.DELETE("/:recipe_id/favorite", requireAuth, h.RemoveFavorite)
		recipes.POST("/:recipe_id/shopping_cart", requireAuth, h.AddToCart)
		recipes.DELETE("/:recipe_id/shopping_cart", requireAuth, h.RemoveFromCart)
	}

	return r
}
