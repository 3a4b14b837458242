package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ventasapi/internal/core/apperror"
	"ventasapi/internal/domain/auth"
	"ventasapi/internal/infrastructure/http/v1/dto"
)

// UsersHandler handles the admin-only account administration endpoints.
type UsersHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(base *BaseHandler, service *auth.Service) *UsersHandler {
	return &UsersHandler{BaseHandler: base, service: service}
}

// List handles GET /users
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUsers(users))
}

// Update handles PUT and PATCH /users/:id
func (h *UsersHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(ctx, id, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}
