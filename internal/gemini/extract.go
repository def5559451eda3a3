package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

// ExtractQuestionArray isolates a JSON array from free-text model output and
// parses it into question/answer pairs. Models wrap their output in code
// fences and prose often enough that the array is located by bracket scan
// after fence cleanup.
func ExtractQuestionArray(raw string) ([]model.QA, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	var questions []model.QA
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("invalid JSON format in model response: %w", err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned an empty question list")
	}
	for i, qa := range questions {
		if strings.TrimSpace(qa.Question) == "" || strings.TrimSpace(qa.Answer) == "" {
			return nil, fmt.Errorf("question %d is missing question or answer text", i+1)
		}
	}
	return questions, nil
}
