package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lanexam/lanexam-backend/internal/middleware"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
	"github.com/lanexam/lanexam-backend/internal/validator"
)

// ExamHandler handles exam authoring and listing endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Create godoc
// POST /api/v1/exams
// Creates a draft exam with its questions. Teacher only.
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedExam):
			response.Fail(c, http.StatusBadRequest, response.ErrMalformedExam)
		case errors.Is(err, service.ErrMCQMissingOptions):
			response.Fail(c, http.StatusBadRequest, response.ErrMissingOptions)
		case errors.Is(err, service.ErrCodingMissingTestCases):
			response.Fail(c, http.StatusBadRequest, response.ErrMissingTestCases)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// ListAll godoc
// GET /api/v1/exams
// Returns every exam with answer keys. Teacher only.
func (h *ExamHandler) ListAll(c *gin.Context) {
	exams, err := h.examService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ListAvailable godoc
// GET /api/v1/exams/available
// Returns active exams with answer keys stripped. No auth required so the
// portal landing page can render before login.
func (h *ExamHandler) ListAvailable(c *gin.Context) {
	exams, err := h.examService.ListAvailable(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetByID godoc
// GET /api/v1/exams/:exam_id
// Returns one exam. Teachers see the full exam; students get the projected
// view without answer keys, and only while the exam is active.
func (h *ExamHandler) GetByID(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	claims := middleware.GetClaims(c)
	if claims != nil && claims.Role == model.RoleTeacher {
		response.Success(c, http.StatusOK, gin.H{"exam": exam})
		return
	}

	if exam.Status != model.ExamStatusActive {
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam.Projected()})
}

// Activate godoc
// POST /api/v1/exams/:exam_id/activate
// Makes a draft exam visible to students. Idempotent. Teacher only.
func (h *ExamHandler) Activate(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.Activate(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}
