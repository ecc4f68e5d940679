package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// ListBySession godoc
// GET /api/sessions/:id/subjects?type=
func (h *SubjectHandler) ListBySession(c *gin.Context) {
	sessionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	subjects, err := h.subjectService.ListBySession(c.Request.Context(), sessionID, c.Query("type"))
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, subjects)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sub, err := h.subjectService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	sub, err := h.subjectService.Create(c.Request.Context(), req)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.RenameRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	sub, err := h.subjectService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Subject deleted")
}
