package service

import (
	"context"
	"fmt"

	"github.com/lanexam/lanexam-backend/internal/llm"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/rs/zerolog"
)

// GenerationError carries a hint for the operator alongside the failure,
// since the usual cause is the local model server being down or mid-load.
type GenerationError struct {
	Err        error
	Suggestion string
}

func (e *GenerationError) Error() string { return e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// GenerationService produces exam questions and chat replies from the local
// model, normalizing whatever shape the model returns into valid questions.
type GenerationService struct {
	client *llm.Client
	log    zerolog.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(client *llm.Client, log zerolog.Logger) *GenerationService {
	return &GenerationService{
		client: client,
		log:    log.With().Str("component", "generation_service").Logger(),
	}
}

// GenerateQuestions asks the model for count MCQ questions on a subject and
// normalizes the output. More questions than asked are truncated; fewer are
// returned as-is.
func (s *GenerationService) GenerateQuestions(ctx context.Context, subject, difficulty string, count int) ([]model.GeneratedQuestion, error) {
	raw, err := s.client.GenerateQuestions(ctx, subject, difficulty, count)
	if err != nil {
		return nil, &GenerationError{
			Err:        fmt.Errorf("generate questions: %w", err),
			Suggestion: "check that the model server is running and the configured model is pulled",
		}
	}

	extracted, err := llm.ExtractQuestions(raw)
	if err != nil {
		s.log.Warn().Str("subject", subject).Msg("Model output contained no parseable questions")
		return nil, &GenerationError{
			Err:        fmt.Errorf("generate questions: %w", err),
			Suggestion: "retry the request; smaller models sometimes return prose instead of JSON",
		}
	}

	if len(extracted) > count {
		extracted = extracted[:count]
	}

	questions := make([]model.GeneratedQuestion, 0, len(extracted))
	for i, q := range extracted {
		questions = append(questions, normalizeQuestion(q, i))
	}

	s.log.Info().
		Str("subject", subject).
		Str("difficulty", difficulty).
		Int("requested", count).
		Int("returned", len(questions)).
		Msg("Questions generated")

	return questions, nil
}

// normalizeQuestion coerces one loose model-produced object into a valid
// question, patching every missing or mistyped field with a usable default
// rather than rejecting the batch.
func normalizeQuestion(q map[string]any, index int) model.GeneratedQuestion {
	out := model.GeneratedQuestion{
		Question:    fmt.Sprintf("Question %d", index+1),
		Explanation: "No explanation provided",
		Points:      1,
		Type:        string(model.QuestionTypeMCQ),
	}

	if text, ok := q["question"].(string); ok && text != "" {
		out.Question = text
	}

	if rawOpts, ok := q["options"].([]any); ok {
		for _, o := range rawOpts {
			if opt, ok := o.(string); ok {
				out.Options = append(out.Options, opt)
			}
		}
	}
	if len(out.Options) < 2 {
		out.Options = []string{"Option A", "Option B", "Option C", "Option D"}
	}

	if n, ok := q["correctAnswer"].(float64); ok && n >= 0 && int(n) < len(out.Options) {
		out.CorrectAnswer = int(n)
	}

	if expl, ok := q["explanation"].(string); ok && expl != "" {
		out.Explanation = expl
	}

	if pts, ok := q["points"].(float64); ok && pts > 0 {
		out.Points = int(pts)
	}

	return out
}

// Chat forwards a free-form message to the model with a role-appropriate
// system prompt.
func (s *GenerationService) Chat(ctx context.Context, message string, isTeacher bool) (string, error) {
	reply, err := s.client.Chat(ctx, message, isTeacher)
	if err != nil {
		return "", &GenerationError{
			Err:        fmt.Errorf("chat: %w", err),
			Suggestion: "check that the model server is running",
		}
	}
	return reply, nil
}
