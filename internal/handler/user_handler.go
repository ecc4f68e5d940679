package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// UserHandler handles admin account management.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers godoc
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// DeleteUser godoc
// DELETE /api/users/:id
// Deletes a user together with their classes and everything below them.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}

	response.Message(c, http.StatusOK, "User and all related data deleted successfully")
}

// UpdatePassword godoc
// PUT /api/users/:id/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		failStore(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Password updated successfully")
}
