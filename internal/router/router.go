package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/handler"
	"github.com/lanexam/lanexam-backend/internal/middleware"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth       *handler.AuthHandler
	Exam       *handler.ExamHandler
	Submission *handler.SubmissionHandler
	Student    *handler.StudentHandler
	AI         *handler.AIHandler
	Code       *handler.CodeHandler
	Presence   *handler.PresenceHandler
}

// Setup builds the gin engine with all routes and middleware.
func Setup(cfg *config.Config, authService *service.AuthService, h Handlers) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(response.RequestIDMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	requireAuth := middleware.RequireAuth(authService)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", loginLimiter.Middleware(), h.Auth.Login)
			auth.POST("/logout", requireAuth, h.Auth.Logout)
			auth.GET("/me", requireAuth, h.Auth.Me)
		}

		exams := v1.Group("/exams")
		{
			exams.GET("/available", h.Exam.ListAvailable)
			exams.GET("", requireAuth, middleware.RequireTeacher(), h.Exam.ListAll)
			exams.POST("", requireAuth, middleware.RequireTeacher(), h.Exam.Create)
			exams.GET("/:exam_id", requireAuth, h.Exam.GetByID)
			exams.POST("/:exam_id/activate", requireAuth, middleware.RequireTeacher(), h.Exam.Activate)
		}

		submissions := v1.Group("/submissions", requireAuth)
		{
			submissions.POST("", middleware.RequireStudent(), h.Submission.Submit)
			submissions.GET("", middleware.RequireTeacher(), h.Submission.ListAll)
			submissions.GET("/mine", middleware.RequireStudent(), h.Submission.ListMine)
		}

		v1.GET("/students", requireAuth, middleware.RequireTeacher(), h.Student.List)

		ai := v1.Group("/ai", requireAuth)
		{
			ai.POST("/generate-questions", middleware.RequireTeacher(), h.AI.GenerateQuestions)
			ai.POST("/chat", h.AI.Chat)
		}

		v1.POST("/code/execute", requireAuth, h.Code.Execute)
	}

	r.GET("/ws/v1/presence", requireAuth, middleware.RequireTeacher(), h.Presence.Stream)

	return r
}
