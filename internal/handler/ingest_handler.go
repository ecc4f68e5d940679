package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/extract"
	"github.com/examgen/examgen-backend/internal/llm"
	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/storage"
	"github.com/examgen/examgen-backend/internal/validator"
)

// IngestHandler serves the document-to-question pipeline.
type IngestHandler struct {
	ingestService *service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService *service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

// Upload godoc
// POST /api/admin/upload
// Extracts question drafts from an uploaded PDF, DOCX or TXT file.
func (h *IngestHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	var req model.UploadMetaRequest
	fields := validator.BindForm(c, &req)
	meta := req.Meta()
	if meta.ClassName == "" || meta.Subject == "" || meta.Chapter == "" || meta.Unit == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrMissingMeta)
		return
	}
	if fields != nil {
		failValidation(c, fields)
		return
	}

	// The model call may outlive an impatient client; let it finish server-side.
	ctx := context.WithoutCancel(c.Request.Context())

	res, err := h.ingestService.ProcessUpload(ctx, userID, file, header, meta)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrDocumentTooSparse):
			response.Fail(c, http.StatusBadRequest, response.ErrDocumentTooSparse)
		case errors.Is(err, service.ErrZeroQuestions):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrZeroQuestions)
		case errors.Is(err, extract.ErrExtractionFailed):
			response.FailWithMessage(c, http.StatusInternalServerError, response.ErrExtractionFailed, err.Error())
		case errors.Is(err, llm.ErrGenerationFailed):
			response.FailWithMessage(c, http.StatusInternalServerError, response.ErrAIGenerationFailed, err.Error())
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessFlat(c, http.StatusOK, gin.H{
		"count":     res.Count,
		"questions": res.Questions,
	})
}

// Save godoc
// POST /api/admin/save
// Commits reviewed drafts to the question bank, skipping duplicates.
func (h *IngestHandler) Save(c *gin.Context) {
	var req model.SaveBatchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		if len(req.Questions) == 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
			return
		}
		failValidation(c, fields)
		return
	}

	res, err := h.ingestService.SaveBatch(context.WithoutCancel(c.Request.Context()), req.Questions)
	if err != nil {
		var saveErr *service.SaveError
		switch {
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoQuestions)
		case errors.As(err, &saveErr):
			_ = c.Error(err)
			response.FailWithMessage(c, http.StatusInternalServerError, response.ErrSaveFailed,
				"Failed to save questions: "+saveErr.Cause.Error())
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessFlat(c, http.StatusOK, gin.H{
		"count":   res.Count,
		"skipped": res.Skipped,
		"message": res.Message,
	})
}
