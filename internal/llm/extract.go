package llm

import (
	"encoding/json"
	"errors"
	"regexp"
)

// ErrNoQuestionsFound is returned when a completion carries no parseable
// question payload.
var ErrNoQuestionsFound = errors.New("no questions found in model output")

var (
	arrayPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
	objectPattern = regexp.MustCompile(`\{[^}]*\}`)
)

// ExtractQuestions pulls question objects out of raw model output. Local
// models wrap JSON in prose or markdown fences more often than not, so this
// looks for the widest bracketed array first and falls back to collecting
// individual objects. Field-level cleanup is left to the caller; elements
// are returned as loose maps.
func ExtractQuestions(raw string) ([]map[string]any, error) {
	if m := arrayPattern.FindString(raw); m != "" {
		var questions []map[string]any
		if err := json.Unmarshal([]byte(m), &questions); err == nil && len(questions) > 0 {
			return questions, nil
		}
	}

	var questions []map[string]any
	for _, m := range objectPattern.FindAllString(raw, -1) {
		var q map[string]any
		if err := json.Unmarshal([]byte(m), &q); err != nil {
			continue
		}
		if _, ok := q["question"]; ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsFound
	}
	return questions, nil
}
