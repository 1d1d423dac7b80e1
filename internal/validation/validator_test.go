package validation

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

func fullLists() map[wordbank.Category][]string {
	return map[wordbank.Category][]string{
		wordbank.Adjective: {"Old"},
		wordbank.Noun:      {"Mill"},
		wordbank.Place:     {"the Lake"},
		wordbank.Title:     {"the Wise"},
		wordbank.Suffix:    {"Ages"},
	}
}

func templates(texts ...string) []models.Template {
	out := make([]models.Template, len(texts))
	for i, text := range texts {
		out[i] = models.Template{Index: i, Text: text}
	}
	return out
}

func TestLintCleanCorpus(t *testing.T) {
	result := NewValidator().Lint(fullLists(), templates("{adjective} {noun} of {place}", "{title}"))

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Nil(t, result.ToAppError())
}

func TestLintEmptyCategory(t *testing.T) {
	lists := fullLists()
	lists[wordbank.Place] = nil

	result := NewValidator().Lint(lists, templates("{noun} of {place}", "{unknown} {place}"))

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "words.place", result.Errors[0].Field)
	assert.Equal(t, "EMPTY_CATEGORY", result.Errors[0].Code)
	assert.Equal(t, "templates[0]", result.Errors[1].Field)

	// the second template stops before it ever reaches {place}
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "templates[1]", result.Warnings[0].Field)

	appErr := result.ToAppError()
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "words.place")
}

func TestLintTemplateWarnings(t *testing.T) {
	result := NewValidator().Lint(fullLists(), templates(
		"{noun} {suffix}",
		"} {noun}",
		"{noun",
		"{{noun}}",
	))

	assert.True(t, result.Valid)
	fields := map[string]int{}
	for _, w := range result.Warnings {
		fields[w.Field]++
	}
	assert.Equal(t, 1, fields["templates[0]"])
	assert.Equal(t, 2, fields["templates[1]"])
	assert.Equal(t, 1, fields["templates[2]"])
	assert.Equal(t, 1, fields["templates[3]"])
}

func TestLintWordWarnings(t *testing.T) {
	lists := fullLists()
	lists[wordbank.Noun] = []string{"Mill", "{noun}", "Mill"}

	result := NewValidator().Lint(lists, nil)
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0].Message, "slot braces")
	assert.Contains(t, result.Warnings[1].Message, "repeats line 1")
	assert.Equal(t, []string{"words.noun: 0 error(s), 2 warning(s)"}, result.Summary())
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"0", "-1", "ten", "10001"} {
		_, err := ParseCount(bad)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidInput), bad)
	}
}

func TestParseIndex(t *testing.T) {
	n, err := ParseIndex("2", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, bad := range []string{"3", "-1", "x"} {
		_, err := ParseIndex(bad, 3)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidInput), bad)
	}
}
