package service

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/dpshade/wordsmith/internal/composer"
	"github.com/dpshade/wordsmith/internal/config"
	"github.com/dpshade/wordsmith/internal/engine"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/storage"
	"github.com/dpshade/wordsmith/internal/validation"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

// Service ties the word bank, templates and generators together for the CLI
// and TUI. Resources are read on first use.
type Service struct {
	storage *storage.Storage
	src     wordbank.Source
	bank    *wordbank.Lazy
	policy  composer.Policy
	logger  zerolog.Logger

	composer  *composer.Composer
	templates []models.Template // Cached after the first load
	names     []string
}

// NewService creates a new service instance from configuration
func NewService(cfg *config.Config, logger zerolog.Logger) (*Service, error) {
	store, err := storage.NewStorage(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return New(store, wordbank.NewSource(cfg.Seed), cfg.Policy(), logger), nil
}

// New creates a service over an existing storage and random source
func New(store *storage.Storage, src wordbank.Source, policy composer.Policy, logger zerolog.Logger) *Service {
	s := &Service{
		storage: store,
		src:     src,
		policy:  policy,
		logger:  logger,
	}
	s.bank = wordbank.NewLazy(func() (*wordbank.WordBank, error) {
		bank, err := store.LoadWordBank(src)
		if err != nil {
			return nil, err
		}
		for _, category := range wordbank.Categories() {
			s.logger.Debug().Str("category", string(category)).Int("words", bank.Len(category)).Msg("word list loaded")
		}
		return bank, nil
	})
	return s
}

// InitLibrary writes the built-in resources into the resource directory
func (s *Service) InitLibrary() ([]string, error) {
	return s.storage.InitLibrary()
}

// BaseDir returns the resource directory
func (s *Service) BaseDir() string {
	return s.storage.GetBaseDir()
}

// Policy returns the title inclusion policy in use
func (s *Service) Policy() composer.Policy {
	return s.policy
}

// Source returns the random source shared by every generator
func (s *Service) Source() wordbank.Source {
	return s.src
}

// WordBank returns the loaded word bank
func (s *Service) WordBank() (*wordbank.WordBank, error) {
	return s.bank.Get()
}

// Words returns the words of one category
func (s *Service) Words(name string) ([]string, error) {
	category, ok := wordbank.ParseCategory(name)
	if !ok {
		return nil, errors.UnknownCategoryError(name)
	}
	bank, err := s.bank.Get()
	if err != nil {
		return nil, err
	}
	return bank.Load(category), nil
}

// GenerateTitle composes one title
func (s *Service) GenerateTitle() (string, error) {
	if s.composer == nil {
		bank, err := s.bank.Get()
		if err != nil {
			return "", err
		}
		s.composer = composer.New(bank, s.policy)
	}
	return s.composer.Generate()
}

// GenerateTitles composes count titles
func (s *Service) GenerateTitles(count int) ([]string, error) {
	return repeat(count, s.GenerateTitle)
}

// GenerateNamedTitle prefixes a title with a random name: "<name>, <title>"
func (s *Service) GenerateNamedTitle() (string, error) {
	names, err := s.loadNames()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.EmptyCategoryError("name")
	}
	name := names[s.src.IntN(len(names))]

	title, err := s.GenerateTitle()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %s", name, title), nil
}

// GenerateNamedTitles produces count "<name>, <title>" lines
func (s *Service) GenerateNamedTitles(count int) ([]string, error) {
	return repeat(count, s.GenerateNamedTitle)
}

// GenerateSentence resolves one template against the word bank. Templates
// that stop resolving early are returned as-is, not as errors.
func (s *Service) GenerateSentence(t models.Template) (string, error) {
	bank, err := s.bank.Get()
	if err != nil {
		return "", err
	}
	out, err := engine.GenerateSentence(t.Text, bank)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(out, "{}") {
		s.logger.Debug().Int("template", t.Index).Str("output", out).Msg("template resolved partially")
	}
	return out, nil
}

// GenerateSentences resolves the same template count times, each time from
// a fresh copy
func (s *Service) GenerateSentences(t models.Template, count int) ([]string, error) {
	return repeat(count, func() (string, error) {
		return s.GenerateSentence(t)
	})
}

// ListTemplates returns every loaded template
func (s *Service) ListTemplates() ([]models.Template, error) {
	if s.templates != nil {
		return s.templates, nil
	}
	templates, err := s.storage.LoadTemplates()
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []models.Template{}
	}
	s.templates = templates
	s.logger.Debug().Int("templates", len(templates)).Msg("templates loaded")
	return templates, nil
}

// GetTemplate returns the template at index
func (s *Service) GetTemplate(index int) (models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return models.Template{}, err
	}
	if index < 0 || index >= len(templates) {
		return models.Template{}, errors.InvalidInputError(fmt.Sprintf("template index %d out of range", index)).
			WithDetails(fmt.Sprintf("%d template(s) loaded", len(templates)))
	}
	return templates[index], nil
}

// RandomTemplate picks a template uniformly at random
func (s *Service) RandomTemplate() (models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return models.Template{}, err
	}
	if len(templates) == 0 {
		return models.Template{}, errors.InvalidInputError("no templates loaded")
	}
	return templates[s.src.IntN(len(templates))], nil
}

// templateSource adapts templates to fuzzy.Source
type templateSource []models.Template

func (t templateSource) String(i int) string { return t[i].Text }
func (t templateSource) Len() int            { return len(t) }

// SearchTemplates fuzzy-matches query against template text, best match first.
// An empty query returns every template.
func (s *Service) SearchTemplates(query string) ([]models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return templates, nil
	}

	matches := fuzzy.FindFrom(query, templateSource(templates))

	results := make([]models.Template, 0, len(matches))
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results, nil
}

// MatchTemplate returns the best fuzzy match for query
func (s *Service) MatchTemplate(query string) (models.Template, error) {
	results, err := s.SearchTemplates(query)
	if err != nil {
		return models.Template{}, err
	}
	if len(results) == 0 {
		return models.Template{}, errors.InvalidInputError(fmt.Sprintf("no template matches %q", query))
	}
	return results[0], nil
}

// Check lints the word lists and templates
func (s *Service) Check() (*validation.ValidationResult, error) {
	lists, err := s.storage.LoadWordLists()
	if err != nil {
		return nil, err
	}
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	return validation.NewValidator().Lint(lists, templates), nil
}

func (s *Service) loadNames() ([]string, error) {
	if s.names != nil {
		return s.names, nil
	}
	names, err := s.storage.ReadNames()
	if err != nil {
		return nil, err
	}
	s.names = names
	return names, nil
}

func repeat(count int, fn func() (string, error)) ([]string, error) {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, err := fn()
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
