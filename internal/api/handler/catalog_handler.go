package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/pkg/response"
)

// ListTags lists all tags
// @Summary List tags
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.catalog.ListTags(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, tags)
}

// GetTag returns one tag
// @Summary Get tag
// @Tags catalog
// @Produce json
// @Param tag_id path string true "tag id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/tags/{tag_id} [get]
func (h *Handler) GetTag(c *gin.Context) {
	tag, err := h.catalog.GetTag(c.Request.Context(), c.Param("tag_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, tag)
}

// ListIngredients searches the ingredient catalog. Without a name query
// the whole catalog is returned ordered by name; with one, prefix matches
// come before substring matches.
// @Summary Search ingredients
// @Tags catalog
// @Produce json
// @Param name query string false "name query"
// @Success 200 {object} response.Response
// @Router /api/v1/ingredients [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	ings, err := h.catalog.SearchIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, ings)
}

// GetIngredient returns one ingredient
// @Summary Get ingredient
// @Tags catalog
// @Produce json
// @Param ingredient_id path string true "ingredient id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/ingredients/{ingredient_id} [get]
func (h *Handler) GetIngredient(c *gin.Context) {
	ing, err := h.catalog.GetIngredient(c.Request.Context(), c.Param("ingredient_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, ing)
}
