package gemini

import (
	"context"
	"fmt"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/cache"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

const questionCount = 5

// maxDescriptionRunes keeps oversized job descriptions out of the prompt.
const maxDescriptionRunes = 8000

// BuildPrompt embeds the job profile fields into the generation template.
func BuildPrompt(position, description string, experience int, techStack string) string {
	return fmt.Sprintf(`Job position: %s
Job description: %s
Years of experience required: %d
Tech stacks: %s

Based on the information above, generate exactly %d technical interview questions with detailed example answers.
Return ONLY a JSON array of %d objects. Each object must have exactly two string fields: "question" and "answer".
No markdown, no code fences, no explanation, no extra fields.`,
		position, pkg.Truncate(description, maxDescriptionRunes), experience, techStack, questionCount, questionCount)
}

// GenerateQuestions builds the prompt, calls the model and extracts the
// question/answer pairs. Identical prompts are served from the cache when
// one is configured.
func (c *Client) GenerateQuestions(ctx context.Context, position, description string, experience int, techStack string) ([]model.QA, error) {
	prompt := BuildPrompt(position, description, experience, techStack)
	key := cache.QuestionSetKey(prompt)

	// cache trouble never blocks generation
	if c.cache != nil {
		var cached []model.QA
		if err := c.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	raw, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ExtractQuestionArray(raw)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, key, questions, cache.QuestionSetTTL)
	}
	return questions, nil
}
