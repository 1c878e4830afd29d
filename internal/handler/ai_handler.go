package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lanexam/lanexam-backend/internal/middleware"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
	"github.com/lanexam/lanexam-backend/internal/validator"
)

// GenerateQuestionsRequest is the payload for AI question generation.
type GenerateQuestionsRequest struct {
	Subject    string `json:"subject" binding:"required,min=2,max=200"`
	Difficulty string `json:"difficulty" binding:"required"`
	Count      int    `json:"count" binding:"required,min=1,max=50"`
}

// ChatRequest is the payload for the AI assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

var allowedDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// AIHandler handles model-backed generation and chat endpoints.
type AIHandler struct {
	generationService *service.GenerationService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(generationService *service.GenerationService) *AIHandler {
	return &AIHandler{generationService: generationService}
}

// GenerateQuestions godoc
// POST /api/v1/ai/generate-questions
// Generates MCQ questions on a subject. Teacher only. Model failures come
// back as 502 with a recovery hint since the model server is a separate
// process the operator may need to start.
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	difficulty := strings.ToLower(req.Difficulty)
	if !allowedDifficulties[difficulty] {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"difficulty": "must be one of easy, medium, hard",
		})
		return
	}

	questions, err := h.generationService.GenerateQuestions(c.Request.Context(), req.Subject, difficulty, req.Count)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			response.FailWithHint(c, http.StatusBadGateway, response.ErrGenerationFailed, genErr.Error(), genErr.Suggestion)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Chat godoc
// POST /api/v1/ai/chat
// Free-form assistant. Teachers get an authoring assistant, students a
// study helper.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	isTeacher := claims != nil && claims.Role == model.RoleTeacher

	reply, err := h.generationService.Chat(c.Request.Context(), req.Message, isTeacher)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			response.FailWithHint(c, http.StatusBadGateway, response.ErrChatUnavailable, genErr.Error(), genErr.Suggestion)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reply": reply})
}
