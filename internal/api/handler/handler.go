package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/config"
	"github.com/d60-Lab/recipehub/internal/service"
	"github.com/d60-Lab/recipehub/pkg/response"
)

// Handler binds the HTTP surface to the service layer. Request/response
// shapes live here; all rules live in the services.
type Handler struct {
	cfg          *config.Config
	userService  service.UserService
	subService   service.SubscriptionService
	catalog      service.CatalogService
	recipeSvc    service.RecipeService
	engagement   service.EngagementService
	shoppingList service.ShoppingListService
}

func NewHandler(
	cfg *config.Config,
	userService service.UserService,
	subService service.SubscriptionService,
	catalog service.CatalogService,
	recipeSvc service.RecipeService,
	engagement service.EngagementService,
	shoppingList service.ShoppingListService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		userService:  userService,
		subService:   subService,
		catalog:      catalog,
		recipeSvc:    recipeSvc,
		engagement:   engagement,
		shoppingList: shoppingList,
	}
}

// fail translates the service error taxonomy into HTTP responses.
func (h *Handler) fail(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, vErr.Rule)
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrSelfSubscribe):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrRecipeNameTaken),
		errors.Is(err, service.ErrUserExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
