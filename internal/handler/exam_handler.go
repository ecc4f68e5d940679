package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/middleware"
	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// ExamHandler handles exam papers and their questions.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

type examListQuery struct {
	Type      string `form:"type" binding:"omitempty,max=50"`
	SessionID *int   `form:"sessionId" binding:"omitempty,min=1"`
	SubjectID *int   `form:"subjectId" binding:"omitempty,min=1"`
}

// ListByClass godoc
// GET /api/classes/:id/exams?type=&sessionId=&subjectId=
// Lists a class's exams with question counts.
func (h *ExamHandler) ListByClass(c *gin.Context) {
	classID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var q examListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		failValidation(c, fields)
		return
	}

	exams, err := h.examService.ListByClass(c.Request.Context(), classID, model.ExamFilter{
		Type:      q.Type,
		SessionID: q.SessionID,
		SubjectID: q.SubjectID,
	})
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, exams)
}

// CreateExam godoc
// POST /api/exams
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), req)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusCreated, exam)
}

// GetExam godoc
// GET /api/exams/:id
// Returns the exam with its questions, subject and class.
func (h *ExamHandler) GetExam(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.examService.GetDetail(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// UpdateExam godoc
// PUT /api/exams/:id
// Edits the paper header. Admins only.
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != model.RoleAdmin {
		response.FailWithMessage(c, http.StatusForbidden, response.ErrForbidden, "Only admins can edit exams")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), id, req)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusOK, exam)
}

// DeleteExam godoc
// DELETE /api/exams/:id
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Exam deleted successfully")
}

// AddQuestion godoc
// POST /api/questions
// Places a question on an exam.
func (h *ExamHandler) AddQuestion(c *gin.Context) {
	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	q, err := h.examService.AddQuestion(c.Request.Context(), req)
	if err != nil {
		failStore(c, err)
		return
	}

	response.Success(c, http.StatusCreated, q)
}

// DeleteQuestion godoc
// DELETE /api/questions/:id
func (h *ExamHandler) DeleteQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.examService.DeleteQuestion(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Question deleted successfully")
}
