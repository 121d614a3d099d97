package onboarding

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-harden/botlimit/botlimit/limit"
)

const longDoc = `{
  "prologue": "This is a very long prologue that exceeds the limit of 50 characters and should be truncated",
  "suggested_questions": [
    {"id": "1", "content": "This is a very long suggested question that exceeds the limit", "highlight": true},
    {"id": "2", "content": "Short question"}
  ],
  "suggested_questions_show_mode": 1
}`

func testService() *limit.Service {
	return limit.NewService(func() limit.Limits {
		return limit.Limits{Onboarding: 50, OnboardingSuggestion: 20}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		content, err := Decode([]byte(longDoc), formatJSON)
		require.NoError(t, err)
		assert.Len(t, content.SuggestedQuestions, 2)
		assert.Equal(t, limit.ShowModeAll, content.ShowMode)
	})

	t.Run("yaml", func(t *testing.T) {
		doc := "prologue: Hello\nsuggested_questions:\n  - id: a\n    content: First\n    highlight: false\nsuggested_questions_show_mode: 0\n"
		content, err := Decode([]byte(doc), formatYAML)
		require.NoError(t, err)
		assert.Equal(t, "Hello", content.Prologue)
		require.Len(t, content.SuggestedQuestions, 1)
		assert.Equal(t, "a", content.SuggestedQuestions[0].ID)
		require.NotNil(t, content.SuggestedQuestions[0].Highlight)
		assert.False(t, *content.SuggestedQuestions[0].Highlight)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Decode([]byte("{"), formatJSON)
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	color.NoColor = true
	svc := testService()

	t.Run("truncates", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, svc, []byte(longDoc), formatJSON, modeTruncate))

		var result limit.OnboardingContent
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "This is a very long prologue that exceeds the limi", result.Prologue)
		require.Len(t, result.SuggestedQuestions, 2)
		assert.Equal(t, "This is a very long ", result.SuggestedQuestions[0].Content)
		assert.Equal(t, "Short question", result.SuggestedQuestions[1].Content)
		assert.Nil(t, result.SuggestedQuestions[1].Highlight)
		assert.Equal(t, limit.ShowModeAll, result.ShowMode)
	})

	t.Run("check_reports_fields", func(t *testing.T) {
		var out bytes.Buffer
		err := run(&out, svc, []byte(longDoc), formatJSON, modeCheck)
		require.ErrorIs(t, err, ErrOverLimit)
		assert.Contains(t, out.String(), "prologue: onboarding must be at most 50 characters (got 92)")
		assert.Contains(t, out.String(), "suggested_questions.0.content: onboardingSuggestion must be at most 20 characters")
		assert.NotContains(t, out.String(), "suggested_questions.1")
	})

	t.Run("check_ok", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, svc, []byte(`{"prologue":"hi","suggested_questions":[]}`), formatJSON, modeCheck))
		assert.Equal(t, "ok\n", out.String())
	})
}

func TestRunDiff(t *testing.T) {
	color.NoColor = true
	svc := testService()

	t.Run("lists_changed_fields", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, svc, []byte(longDoc), formatJSON, modeDiff))

		s := out.String()
		assert.Contains(t, s, "~ prologue (92 → 50 characters)")
		assert.Contains(t, s, "~ suggested_questions[0] (1)")
		assert.NotContains(t, s, "suggested_questions[1]")
		assert.Contains(t, s, "+ This is a very long \n")
		assert.Contains(t, s, "(1 unchanged)")
	})

	t.Run("within_limits", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, svc, []byte(`{"prologue":"hi"}`), formatJSON, modeDiff))
		assert.Contains(t, out.String(), "nothing to truncate")
	})
}

func TestInlineHighlight(t *testing.T) {
	color.NoColor = true

	a, b := inlineHighlight("hello world", "hello")
	assert.Equal(t, "hello world", a)
	assert.Equal(t, "hello", b)

	assert.Equal(t, []string{"e\u0301", "👍🏽", "x"}, splitGraphemes("e\u0301👍🏽x"))
	assert.Empty(t, splitGraphemes(""))
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, formatYAML, formatFromPath("doc.yaml"))
	assert.Equal(t, formatYAML, formatFromPath("DOC.YML"))
	assert.Equal(t, formatJSON, formatFromPath("doc.json"))
	assert.Equal(t, formatJSON, formatFromPath("-"))
}
