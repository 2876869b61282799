package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/internal/api/middleware"
	"github.com/d60-Lab/recipehub/pkg/response"
)

// AddFavorite marks a recipe as favorited
// @Summary Favorite a recipe
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/recipes/{recipe_id}/favorite [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	user := middleware.CurrentUser(c)
	preview, err := h.engagement.AddFavorite(c.Request.Context(), user.ID, c.Param("recipe_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, preview)
}

// RemoveFavorite unmarks a favorited recipe
// @Summary Unfavorite a recipe
// @Tags engagement
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{recipe_id}/favorite [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.engagement.RemoveFavorite(c.Request.Context(), user.ID, c.Param("recipe_id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// AddToCart puts a recipe into the shopping cart
// @Summary Add recipe to cart
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/recipes/{recipe_id}/shopping_cart [post]
func (h *Handler) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	preview, err := h.engagement.AddToCart(c.Request.Context(), user.ID, c.Param("recipe_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, preview)
}

// RemoveFromCart takes a recipe out of the shopping cart
// @Summary Remove recipe from cart
// @Tags engagement
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{recipe_id}/shopping_cart [delete]
func (h *Handler) RemoveFromCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.engagement.RemoveFromCart(c.Request.Context(), user.ID, c.Param("recipe_id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadShoppingCart renders the aggregated shopping list as a text file
// @Summary Download shopping list
// @Tags engagement
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "text attachment"
// @Failure 400 {object} response.Response "empty cart"
// @Router /api/v1/recipes/download_shopping_cart [get]
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	items, err := h.shoppingList.Build(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	body := h.shoppingList.Render(user, items, time.Now())
	filename := fmt.Sprintf("%s_shopping_list.txt", user.Username)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
