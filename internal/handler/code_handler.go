package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
	"github.com/lanexam/lanexam-backend/internal/validator"
)

// ExecuteCodeRequest is the payload for running code during a coding exam.
type ExecuteCodeRequest struct {
	Language  string           `json:"language" binding:"required,oneof=python nodejs"`
	Code      string           `json:"code" binding:"required,max=65536"`
	Stdin     string           `json:"stdin" binding:"omitempty,max=16384"`
	TestCases []model.TestCase `json:"test_cases" binding:"omitempty,max=20"`
}

// CodeHandler handles sandboxed code execution endpoints.
type CodeHandler struct {
	executionService *service.ExecutionService
}

// NewCodeHandler creates a new CodeHandler.
func NewCodeHandler(executionService *service.ExecutionService) *CodeHandler {
	return &CodeHandler{executionService: executionService}
}

// Execute godoc
// POST /api/v1/code/execute
// Runs code once with optional stdin, or against test cases when provided.
// Runtime failures (syntax errors, crashes, timeouts) are a successful
// response with the error in the body; only unrunnable requests fail.
func (h *CodeHandler) Execute(c *gin.Context) {
	var req ExecuteCodeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if len(req.TestCases) > 0 {
		results, err := h.executionService.RunTestCases(c.Request.Context(), req.Language, req.Code, req.TestCases)
		if err != nil {
			h.failExecution(c, err)
			return
		}
		passed := 0
		for _, r := range results {
			if r.Passed {
				passed++
			}
		}
		response.Success(c, http.StatusOK, gin.H{
			"test_results": results,
			"passed":       passed,
			"total":        len(results),
		})
		return
	}

	result, err := h.executionService.Execute(c.Request.Context(), req.Language, req.Code, req.Stdin)
	if err != nil {
		h.failExecution(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

func (h *CodeHandler) failExecution(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnsupportedLanguage) {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedLanguage)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrExecutionFailed)
}
