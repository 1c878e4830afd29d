package main

import (
	"context"
	"fmt"

	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/lanexam/lanexam-backend/internal/database"
	"github.com/lanexam/lanexam-backend/internal/logger"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/repository"
	"github.com/lanexam/lanexam-backend/internal/service"
)

func intPtr(v int) *int { return &v }

// Seeds a teacher, three students and one activated demo exam so a fresh
// install is usable without manual setup. All demo passwords are "password1".
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	examRepo := repository.NewExamRepository(pool)

	authService := service.NewAuthService(cfg, userRepo, sessionRepo, rdb, log)
	userService := service.NewUserService(userRepo, authService, log)
	examService := service.NewExamService(examRepo, rdb, log)

	teacher, err := userService.Signup(ctx, &model.SignupRequest{
		Username: "teacher1",
		Password: "password1",
		FullName: "Demo Teacher",
		Role:     string(model.RoleTeacher),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo teacher")
	}
	fmt.Printf("Created teacher: %s\n", teacher.Username)

	students := []model.SignupRequest{
		{Username: "student1", Password: "password1", FullName: "Alice Demo", StudentID: "S-1001", Role: string(model.RoleStudent)},
		{Username: "student2", Password: "password1", FullName: "Bob Demo", StudentID: "S-1002", Role: string(model.RoleStudent)},
		{Username: "student3", Password: "password1", FullName: "Carol Demo", StudentID: "S-1003", Role: string(model.RoleStudent)},
	}
	for i := range students {
		user, err := userService.Signup(ctx, &students[i])
		if err != nil {
			log.Fatal().Err(err).Str("username", students[i].Username).Msg("Failed to create demo student")
		}
		fmt.Printf("Created student: %s\n", user.Username)
	}

	exam, err := examService.Create(ctx, &model.CreateExamRequest{
		Title:           "Introduction to Networking",
		Description:     "A short quiz covering IP addressing and common protocols.",
		DurationMinutes: 30,
		Questions: []model.CreateQuestionRequest{
			{
				Type:          string(model.QuestionTypeMCQ),
				Question:      "Which protocol resolves hostnames to IP addresses?",
				Points:        2,
				Options:       []string{"DHCP", "DNS", "ARP", "FTP"},
				CorrectAnswer: intPtr(1),
			},
			{
				Type:          string(model.QuestionTypeMCQ),
				Question:      "What is the default port for HTTPS?",
				Points:        2,
				Options:       []string{"80", "21", "443", "8080"},
				CorrectAnswer: intPtr(2),
			},
			{
				Type:        string(model.QuestionTypeCoding),
				Question:    "Read a line from stdin and print it reversed.",
				Points:      6,
				Language:    "python",
				StarterCode: "line = input()\n# print the reversed line\n",
				TestCases: []model.TestCase{
					{Input: "hello\n", ExpectedOutput: "olleh"},
					{Input: "lan\n", ExpectedOutput: "nal", IsHidden: true},
				},
			},
		},
	}, teacher.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create demo exam")
	}

	if _, err := examService.Activate(ctx, exam.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to activate demo exam")
	}

	fmt.Printf("Created and activated exam: %s (%s)\n", exam.Title, exam.ID)
	fmt.Println("\nSeed complete. Log in as teacher1 / password1 or student1 / password1.")
}
