package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/internal/api/middleware"
	"github.com/d60-Lab/recipehub/internal/repository"
	"github.com/d60-Lab/recipehub/internal/service"
	"github.com/d60-Lab/recipehub/pkg/response"
)

// ListRecipes lists recipes with optional AND-composed filters
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Param tags query []string false "tag slugs (OR)"
// @Param author query string false "author id"
// @Param is_favorited query string false "1/true or 0/false (authenticated only)"
// @Param is_in_shopping_cart query string false "1/true or 0/false (authenticated only)"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	f := repository.RecipeFilter{
		TagSlugs:    c.QueryArray("tags"),
		AuthorID:    c.Query("author"),
		IsFavorited: h.recipeSvc.BoolFlag(c.Query("is_favorited")),
		IsInCart:    h.recipeSvc.BoolFlag(c.Query("is_in_shopping_cart")),
	}
	list, err := h.recipeSvc.List(c.Request.Context(), f, user, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// GetRecipe returns one recipe
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param recipe_id path string true "recipe id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{recipe_id} [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	view, err := h.recipeSvc.Get(c.Request.Context(), c.Param("recipe_id"), user)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, view)
}

// CreateRecipe creates a recipe with its tags and ingredient lines
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RecipeInput true "recipe payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/recipes [post]
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req service.RecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	view, err := h.recipeSvc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, view)
}

// UpdateRecipe replaces a recipe's fields, tag set and ingredient lines
// @Summary Update recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Param request body service.RecipeInput true "recipe payload"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{recipe_id} [patch]
func (h *Handler) UpdateRecipe(c *gin.Context) {
	var req service.RecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	view, err := h.recipeSvc.Update(c.Request.Context(), c.Param("recipe_id"), user.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteRecipe removes a recipe and its dependent rows
// @Summary Delete recipe
// @Tags recipes
// @Security BearerAuth
// @Param recipe_id path string true "recipe id"
// @Success 204
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/recipes/{recipe_id} [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.recipeSvc.Delete(c.Request.Context(), c.Param("recipe_id"), user.ID); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}
