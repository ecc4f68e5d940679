package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/llm"
	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// TeacherAIHandler serves free-form question generation.
type TeacherAIHandler struct {
	aiService *service.TeacherAIService
}

func NewTeacherAIHandler(aiService *service.TeacherAIService) *TeacherAIHandler {
	return &TeacherAIHandler{aiService: aiService}
}

// Generate godoc
// POST /api/ai/teacher-generate
// Generates up to five questions from a teacher's instruction.
func (h *TeacherAIHandler) Generate(c *gin.Context) {
	var req model.TeacherGenerateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	res, err := h.aiService.Generate(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAIEmptyResponse):
			response.Fail(c, http.StatusInternalServerError, response.ErrAIEmptyResponse)
		case errors.Is(err, llm.ErrGenerationFailed):
			response.FailWithMessage(c, http.StatusInternalServerError, response.ErrAIGenerationFailed, err.Error())
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessFlat(c, http.StatusOK, gin.H{
		"questions": res.Questions,
		"model":     res.Model,
		"provider":  res.Provider,
	})
}
