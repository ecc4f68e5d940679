package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// ClassHandler handles class management (CRUD).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/classes
// Lists all classes with their exam counts.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, classes)
}

// GetClass godoc
// GET /api/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, class)
}

// CreateClass godoc
// POST /api/classes
// Creates a class owned by the calling admin.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), req.Name, userID)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusCreated, class)
}

// UpdateClass godoc
// PUT /api/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	class, err := h.classService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, class)
}

// DeleteClass godoc
// DELETE /api/classes/:id
// Deletes a class. Its sessions, subjects and exams go with it.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Class deleted successfully")
}
