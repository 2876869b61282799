package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/recipehub/internal/api/middleware"
	"github.com/d60-Lab/recipehub/internal/model"
	"github.com/d60-Lab/recipehub/internal/service"
	"github.com/d60-Lab/recipehub/pkg/response"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type userProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (h *Handler) profile(c *gin.Context, u *model.User) (userProfile, error) {
	p := userProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if requester := middleware.CurrentUser(c); requester != nil {
		subscribed, err := h.subService.IsSubscribed(c.Request.Context(), requester.ID, u.ID)
		if err != nil {
			return p, err
		}
		p.IsSubscribed = subscribed
	}
	return p, nil
}

// Register creates a new account
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "registration payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, userProfile{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Login exchanges credentials for a bearer token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"auth_token": token})
}

// Me returns the authenticated user's own profile
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	p, err := h.profile(c, user)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, p)
}

// GetUser returns one user profile
// @Summary Get user
// @Tags users
// @Produce json
// @Param user_id path string true "user id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.profile(c, user)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, p)
}

// ListUsers returns a page of user profiles
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	users, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	profiles := make([]userProfile, 0, len(users))
	for _, u := range users {
		p, err := h.profile(c, u)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		profiles = append(profiles, p)
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": profiles})
}

// SetPassword changes the authenticated user's password
// @Summary Change password
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param request body setPasswordRequest true "passwords"
// @Success 204
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/users/set_password [post]
func (h *Handler) SetPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.userService.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}
