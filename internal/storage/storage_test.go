package storage

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestReadWordListTrimsAndSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nouns.txt", "  Mill \r\n\nTower\n   \n\tGate\n")

	store, err := NewStorage(dir)
	require.NoError(t, err)

	words, err := store.ReadWordList("nouns.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mill", "Tower", "Gate"}, words)
}

func TestReadTemplatesKeepsTextVerbatim(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SentencesFile, "{adjective} {noun} of {place}\n\n  {title} waits \n")

	store, err := NewStorage(dir)
	require.NoError(t, err)

	templates, err := store.LoadTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "{adjective} {noun} of {place}", templates[0].Text)
	assert.Equal(t, 0, templates[0].Index)
	assert.Equal(t, "  {title} waits ", templates[1].Text)
	assert.Equal(t, 1, templates[1].Index)
	assert.Equal(t, SentencesFile, templates[1].Source)
}

func TestMissingResource(t *testing.T) {
	store, err := NewStorage(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, store.Manifest())

	_, err = store.ReadWordList("nouns.txt")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMissingResource))
	assert.True(t, stderrors.Is(err, os.ErrNotExist))

	_, err = store.LoadWordLists()
	assert.True(t, stderrors.Is(err, errors.ErrMissingResource))
}

func TestInitLibraryThenLoadLegacyLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "res")
	store, err := NewStorage(dir)
	require.NoError(t, err)

	written, err := store.InitLibrary()
	require.NoError(t, err)
	assert.Len(t, written, 7)

	// a second run keeps the files that are already there
	written, err = store.InitLibrary()
	require.NoError(t, err)
	assert.Empty(t, written)

	lists, err := store.LoadWordLists()
	require.NoError(t, err)
	for _, category := range wordbank.Categories() {
		assert.NotEmpty(t, lists[category], category)
	}

	templates, err := store.LoadTemplates()
	require.NoError(t, err)
	assert.NotEmpty(t, templates)

	names, err := store.ReadNames()
	require.NoError(t, err)
	assert.Contains(t, names, "Aldric")
}

func TestManifestMixesInlineAndFileLists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, `
name: test corpus
words:
  Noun: my-nouns.txt
  adjective: [Old]
  place: ["the Lake"]
  title: [the Wise, the Bold]
templates:
  - "{adjective} {noun} of {place}"
  - ""
templates_file: more.txt
names_file: heroes.txt
`)
	writeFile(t, dir, "my-nouns.txt", "Mill\n")
	writeFile(t, dir, "suffixes.txt", "Ages\n")
	writeFile(t, dir, "more.txt", "{title} of {place}\n")
	writeFile(t, dir, "heroes.txt", "Brenna\n")

	store, err := NewStorage(dir)
	require.NoError(t, err)
	require.NotNil(t, store.Manifest())
	assert.Equal(t, "test corpus", store.Manifest().Name)

	lists, err := store.LoadWordLists()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mill"}, lists[wordbank.Noun])
	assert.Equal(t, []string{"Old"}, lists[wordbank.Adjective])
	assert.Equal(t, []string{"the Wise", "the Bold"}, lists[wordbank.Title])
	assert.Equal(t, []string{"Ages"}, lists[wordbank.Suffix])

	templates, err := store.LoadTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, ManifestFile, templates[0].Source)
	assert.Equal(t, "{title} of {place}", templates[1].Text)
	assert.Equal(t, 1, templates[1].Index)

	names, err := store.ReadNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Brenna"}, names)
}

func TestManifestRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, "words:\n  verb: [run]\n")

	_, err := NewStorage(dir)
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	assert.Equal(t, errors.ErrCodeResourceCorrupted, appErr.Code)
}

func TestManifestRejectsBadWordSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, "words:\n  noun:\n    file: nouns.txt\n")

	_, err := NewStorage(dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeResourceCorrupted, errors.GetAppError(err).Code)
}

func TestManifestAcceptsPluralKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ManifestFile, "words:\n  nouns: [Mill]\n  suffixes: [Ages]\n")
	writeFile(t, dir, "adjectives.txt", "Old\n")
	writeFile(t, dir, "places.txt", "the Lake\n")
	writeFile(t, dir, "titles.txt", "the Wise\n")

	store, err := NewStorage(dir)
	require.NoError(t, err)

	lists, err := store.LoadWordLists()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mill"}, lists[wordbank.Noun])
	assert.Equal(t, []string{"Ages"}, lists[wordbank.Suffix])
	assert.Equal(t, []string{"Old"}, lists[wordbank.Adjective])
}
