package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/wordsmith/internal/composer"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/service"
	"github.com/dpshade/wordsmith/internal/storage"
	"github.com/dpshade/wordsmith/internal/wordbank/wordbanktest"
)

var corpus = map[string]string{
	"nouns.txt":      "Mill\n",
	"adjectives.txt": "Old\n",
	"places.txt":     "the Lake\n",
	"titles.txt":     "the Wise\n",
	"suffixes.txt":   "Ages\n",
	"sentences.txt":  "{adjective} {noun} of {place}\nBeware the {noun} of {suffix}\n",
	"names.txt":      "Brenna\n",
}

func newTestCLI(t *testing.T, overrides map[string]string) (*CLI, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range corpus {
		if o, ok := overrides[name]; ok {
			content = o
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	store, err := storage.NewStorage(dir)
	require.NoError(t, err)
	svc := service.New(store, wordbanktest.Zeros{}, composer.DefaultPolicy(), zerolog.Nop())

	var out bytes.Buffer
	return NewCLI(svc, &out, &bytes.Buffer{}, false, zerolog.Nop()), &out
}

func TestTitleCommand(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"title", "2"}))
	assert.Equal(t, "Old Mill, the Wise of the Mill\nOld Mill, the Wise of the Mill\n", out.String())
}

func TestTitleCommandDefaultsToTen(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"title"}))
	assert.Equal(t, 10, bytes.Count(out.Bytes(), []byte("\n")))
}

func TestTitleCommandColorSwatch(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"title", "1", "--color"}))
	assert.Equal(t, "Old Mill, the Wise of the Mill | #\n", out.String())
}

func TestTitleCommandJSON(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"title", "1", "--color", "--format", "json"}))

	var decoded struct {
		Command string `json:"command"`
		Lines   []struct {
			Text  string `json:"text"`
			Color string `json:"color"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "title", decoded.Command)
	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, "#000000", decoded.Lines[0].Color)
}

func TestSentenceCommand(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"sentence", "0", "2"}))
	assert.Equal(t, "Old Mill of the Lake\nOld Mill of the Lake\n", out.String())
}

func TestSentenceCommandRandomTemplate(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"sentence"}))
	assert.Equal(t, "Old Mill of the Lake\n", out.String())
}

func TestSentenceCommandMatch(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"sentence", "--match", "beware", "1"}))
	assert.Equal(t, "Beware the Mill of {suffix}\n", out.String())
}

func TestSentenceCommandBadIndex(t *testing.T) {
	c, _ := newTestCLI(t, nil)

	err := c.ExecuteCommand([]string{"sentence", "7"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	err = c.ExecuteCommand([]string{"sentence", "0", "0"})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))
}

func TestNamesCommand(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"names", "1"}))
	assert.Equal(t, "Brenna, Old Mill, the Wise of the Mill\n", out.String())
}

func TestTemplatesCommand(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"templates"}))
	assert.Equal(t, "  0  {adjective} {noun} of {place}\n  1  Beware the {noun} of {suffix}\n", out.String())

	out.Reset()
	require.NoError(t, c.ExecuteCommand([]string{"templates", "beware"}))
	assert.Equal(t, "  1  Beware the {noun} of {suffix}\n", out.String())
}

func TestWordsCommand(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand([]string{"words", "places", "-f", "markdown"}))
	assert.Equal(t, "## words\n\n- the Lake\n", out.String())

	err := c.ExecuteCommand([]string{"words"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCommand, errors.GetAppError(err).Code)
}

func TestCheckCommand(t *testing.T) {
	c, out := newTestCLI(t, map[string]string{"titles.txt": "\n"})

	err := c.ExecuteCommand([]string{"check"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.GetAppError(err).Code)
	assert.Contains(t, out.String(), "error   words.title: category 'title' has no words")
	assert.Contains(t, out.String(), "warning templates[1]: resolution stops at {suffix}")
}

func TestUnknownCommandAndFlag(t *testing.T) {
	c, _ := newTestCLI(t, nil)

	err := c.ExecuteCommand([]string{"poem"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandNotFound, errors.GetAppError(err).Code)

	err = c.ExecuteCommand([]string{"title", "--loud"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCommand, errors.GetAppError(err).Code)

	err = c.ExecuteCommand([]string{"title", "--format"})
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	c, out := newTestCLI(t, nil)

	require.NoError(t, c.ExecuteCommand(nil))
	assert.Contains(t, out.String(), "Usage: wordsmith")

	out.Reset()
	require.NoError(t, c.ExecuteCommand([]string{"help", "sentence"}))
	assert.Contains(t, out.String(), "--match")

	assert.Error(t, c.ExecuteCommand([]string{"help", "poem"}))
}
