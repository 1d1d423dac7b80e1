package storage

import (
	"bufio"
	"bytes"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

const (
	// ManifestFile is the optional corpus manifest inside the resource directory
	ManifestFile = "words.yaml"
	// SentencesFile holds one template per line in the legacy layout
	SentencesFile = "sentences.txt"
	// NamesFile holds one name per line in the legacy layout
	NamesFile = "names.txt"
	// DefaultDir is used when no resource directory is configured
	DefaultDir = "res"
)

//go:embed defaults/*.txt
var defaults embed.FS

// Storage reads word lists, templates and names from a resource directory
type Storage struct {
	rootPath string
	manifest *models.Corpus
}

// NewStorage creates a new storage instance rooted at rootPath. A words.yaml
// manifest is read eagerly when present; the lists themselves are read on demand.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		rootPath = DefaultDir
	}

	s := &Storage{rootPath: rootPath}

	manifest, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	s.manifest = manifest

	return s, nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// Manifest returns the parsed words.yaml, or nil for the legacy layout
func (s *Storage) Manifest() *models.Corpus {
	return s.manifest
}

// InitLibrary writes the built-in word lists and templates into the resource
// directory. Existing files are left alone.
func (s *Storage) InitLibrary() ([]string, error) {
	if err := os.MkdirAll(s.rootPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", s.rootPath, err)
	}

	entries, err := fs.ReadDir(defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in corpus: %w", err)
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(s.rootPath, entry.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		}
		data, err := defaults.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return written, fmt.Errorf("failed to read built-in %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}

	return written, nil
}

// ReadLines returns every line of a resource file, without line terminators
func (s *Storage) ReadLines(name string) ([]string, error) {
	fullPath := filepath.Join(s.rootPath, name)

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.MissingResourceError(fullPath, err).
				WithDetails("run with --init to create the default resources")
		}
		return nil, errors.Wrap(err, errors.ErrCodeMissingResource, fmt.Sprintf("failed to read %s", fullPath))
	}

	lines, err := splitLines(data)
	if err != nil {
		return nil, errors.CorruptedResourceError(fullPath, err)
	}
	return lines, nil
}

// ReadWordList returns the trimmed, non-empty lines of a resource file
func (s *Storage) ReadWordList(name string) ([]string, error) {
	lines, err := s.ReadLines(name)
	if err != nil {
		return nil, err
	}
	return trimNonEmpty(lines), nil
}

// ReadTemplates returns one template per non-blank line. Templates are kept
// verbatim, surrounding whitespace included.
func (s *Storage) ReadTemplates(name string) ([]models.Template, error) {
	lines, err := s.ReadLines(name)
	if err != nil {
		return nil, err
	}

	templates := make([]models.Template, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		templates = append(templates, models.Template{
			Index:  len(templates),
			Text:   line,
			Source: name,
		})
	}
	return templates, nil
}

// ReadNames returns the names used for "<name>, <title>" output
func (s *Storage) ReadNames() ([]string, error) {
	name := NamesFile
	if s.manifest != nil && s.manifest.NamesFile != "" {
		name = s.manifest.NamesFile
	}
	return s.ReadWordList(name)
}

// LoadTemplates returns the sentence templates declared by the manifest, or
// sentences.txt in the legacy layout
func (s *Storage) LoadTemplates() ([]models.Template, error) {
	if s.manifest == nil {
		return s.ReadTemplates(SentencesFile)
	}

	var templates []models.Template
	for _, text := range s.manifest.Templates {
		if strings.TrimSpace(text) == "" {
			continue
		}
		templates = append(templates, models.Template{
			Index:  len(templates),
			Text:   text,
			Source: ManifestFile,
		})
	}

	if s.manifest.TemplatesFile != "" {
		fromFile, err := s.ReadTemplates(s.manifest.TemplatesFile)
		if err != nil {
			return nil, err
		}
		for _, t := range fromFile {
			t.Index = len(templates)
			templates = append(templates, t)
		}
	}

	return templates, nil
}

// LoadWordLists reads every category. With a manifest, categories it does not
// mention fall back to the legacy file name.
func (s *Storage) LoadWordLists() (map[wordbank.Category][]string, error) {
	lists := make(map[wordbank.Category][]string, len(wordbank.Categories()))

	for _, category := range wordbank.Categories() {
		source := models.WordSource{File: category.Plural() + ".txt"}
		if s.manifest != nil {
			if declared, ok := s.manifest.Words[string(category)]; ok {
				source = declared
			}
		}

		if source.File == "" {
			lists[category] = trimNonEmpty(source.Words)
			continue
		}

		words, err := s.ReadWordList(source.File)
		if err != nil {
			return nil, err
		}
		lists[category] = words
	}

	return lists, nil
}

// LoadWordBank reads every category into a new WordBank
func (s *Storage) LoadWordBank(src wordbank.Source) (*wordbank.WordBank, error) {
	lists, err := s.LoadWordLists()
	if err != nil {
		return nil, err
	}
	return wordbank.New(lists, src), nil
}

func (s *Storage) loadManifest() (*models.Corpus, error) {
	fullPath := filepath.Join(s.rootPath, ManifestFile)

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeMissingResource, fmt.Sprintf("failed to read %s", fullPath))
	}

	var corpus models.Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return nil, errors.CorruptedResourceError(fullPath, err)
	}
	words := make(map[string]models.WordSource, len(corpus.Words))
	for name, source := range corpus.Words {
		category, ok := wordbank.ParseCategory(name)
		if !ok {
			return nil, errors.CorruptedResourceError(fullPath, errors.UnknownCategoryError(name))
		}
		words[string(category)] = source
	}
	corpus.Words = words
	corpus.FilePath = fullPath

	return &corpus, nil
}

// Helper functions

func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func trimNonEmpty(lines []string) []string {
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}
	return words
}
