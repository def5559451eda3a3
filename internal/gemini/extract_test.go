package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validArray = `[
  {"question": "What is a goroutine?", "answer": "A lightweight thread managed by the Go runtime."},
  {"question": "What does defer do?", "answer": "Schedules a call to run when the surrounding function returns."}
]`

func TestExtractQuestionArray_plain(t *testing.T) {
	got, err := ExtractQuestionArray(validArray)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "What is a goroutine?", got[0].Question)
	require.Equal(t, "Schedules a call to run when the surrounding function returns.", got[1].Answer)
}

func TestExtractQuestionArray_codeFenced(t *testing.T) {
	fenced := "```json\n" + validArray + "\n```"

	plain, err := ExtractQuestionArray(validArray)
	require.NoError(t, err)

	got, err := ExtractQuestionArray(fenced)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestExtractQuestionArray_fencedWithoutLanguageTag(t *testing.T) {
	fenced := "```\n" + validArray + "\n```"
	got, err := ExtractQuestionArray(fenced)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestExtractQuestionArray_surroundingProse(t *testing.T) {
	raw := "Sure! Here are the questions you asked for:\n" + validArray + "\nLet me know if you need more."
	got, err := ExtractQuestionArray(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestExtractQuestionArray_noBrackets(t *testing.T) {
	_, err := ExtractQuestionArray("I could not produce any questions for this role.")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no JSON array found")
}

func TestExtractQuestionArray_invalidJSON(t *testing.T) {
	_, err := ExtractQuestionArray(`[{"question": "broken", "answer": }]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid JSON format")
}

func TestExtractQuestionArray_nonArrayJSON(t *testing.T) {
	// brackets exist, but the bracketed substring is not a JSON array of objects
	_, err := ExtractQuestionArray(`{"questions": ["a", "b"]}`)
	require.Error(t, err)
}

func TestExtractQuestionArray_emptyArray(t *testing.T) {
	_, err := ExtractQuestionArray(`[]`)
	require.Error(t, err)
}

func TestExtractQuestionArray_missingAnswerText(t *testing.T) {
	_, err := ExtractQuestionArray(`[{"question": "What is Go?", "answer": "  "}]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing question or answer")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Backend Engineer", "Design and run Go services at scale.", 3, "Go, PostgreSQL, Redis")

	for _, want := range []string{"Backend Engineer", "Design and run Go services at scale.", "3", "Go, PostgreSQL, Redis", "JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_truncatesDescription(t *testing.T) {
	long := strings.Repeat("x", maxDescriptionRunes+500)
	prompt := BuildPrompt("Dev", long, 1, "Go")
	if strings.Contains(prompt, long) {
		t.Error("oversized description was not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", maxDescriptionRunes)) {
		t.Error("truncated description missing from prompt")
	}
}
