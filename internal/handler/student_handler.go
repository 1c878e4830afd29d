package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
)

// StudentHandler handles the teacher-facing student roster endpoint.
type StudentHandler struct {
	userService *service.UserService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(userService *service.UserService) *StudentHandler {
	return &StudentHandler{userService: userService}
}

// List godoc
// GET /api/v1/students
// Returns all registered students with their online status. Teacher only.
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.userService.ListStudents(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}
