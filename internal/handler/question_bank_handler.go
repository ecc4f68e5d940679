package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// QuestionBankHandler handles the shared question bank.
type QuestionBankHandler struct {
	bankService *service.QuestionBankService
}

func NewQuestionBankHandler(bankService *service.QuestionBankService) *QuestionBankHandler {
	return &QuestionBankHandler{bankService: bankService}
}

// List godoc
// GET /api/question-bank?subject=&chapter=&topic=&unit=&className=&type=
func (h *QuestionBankHandler) List(c *gin.Context) {
	var f model.QuestionBankFilter
	if fields := validator.BindQuery(c, &f); fields != nil {
		failValidation(c, fields)
		return
	}

	records, err := h.bankService.List(c.Request.Context(), f)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// Get godoc
// GET /api/question-bank/:id
func (h *QuestionBankHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rec, err := h.bankService.GetByID(c.Request.Context(), id)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Create godoc
// POST /api/question-bank
// A question whose normalized text is already banked yields 409.
func (h *QuestionBankHandler) Create(c *gin.Context) {
	var req model.QuestionBankRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	rec, err := h.bankService.Create(c.Request.Context(), req)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

// Update godoc
// PUT /api/question-bank/:id
func (h *QuestionBankHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.QuestionBankRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	rec, err := h.bankService.Update(c.Request.Context(), id, req)
	if err != nil {
		failStore(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Delete godoc
// DELETE /api/question-bank/:id
func (h *QuestionBankHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.bankService.Delete(c.Request.Context(), id); err != nil {
		failStore(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Question deleted successfully")
}
