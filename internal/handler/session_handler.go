package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// ListByClass godoc
// GET /api/classes/:id/sessions?type=
// The optional type narrows each session's exam count.
func (h *SessionHandler) ListByClass(c *gin.Context) {
	classID, ok := paramID(c, "id")
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListByClass(c.Request.Context(), classID, c.Query("type"))
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, sessions)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sess, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	sess, err := h.sessionService.Create(c.Request.Context(), req)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sess)
}

func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.RenameRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	sess, err := h.sessionService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, sess)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Session deleted")
}
