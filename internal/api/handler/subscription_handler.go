package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/internal/api/middleware"
	"github.com/d60-Lab/recipehub/pkg/response"
)

// Subscribe follows an author
// @Summary Subscribe to an author
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "author id"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users/{user_id}/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	summary, err := h.subService.Subscribe(c.Request.Context(), user.ID, c.Param("user_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, summary)
}

// Unsubscribe unfollows an author
// @Summary Unsubscribe from an author
// @Tags subscriptions
// @Security BearerAuth
// @Param user_id path string true "author id"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id}/subscribe [delete]
func (h *Handler) Unsubscribe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.subService.Unsubscribe(c.Request.Context(), user.ID, c.Param("user_id")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubscriptions lists followed authors with their recipes
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Param recipes_limit query int false "max recipes per author (0 = all)"
// @Success 200 {object} response.Response
// @Router /api/v1/users/subscriptions [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	recipesLimit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))
	list, err := h.subService.ListSubscriptions(c.Request.Context(), user.ID, page, pageSize, recipesLimit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
