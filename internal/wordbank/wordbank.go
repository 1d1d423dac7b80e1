package wordbank

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dpshade/wordsmith/internal/errors"
)

// Category identifies one of the fixed word classes
type Category string

const (
	Noun      Category = "noun"
	Adjective Category = "adjective"
	Place     Category = "place"
	Suffix    Category = "suffix"
	Title     Category = "title"
)

// Categories returns every category in a stable order
func Categories() []Category {
	return []Category{Noun, Adjective, Place, Suffix, Title}
}

// ParseCategory maps a command-line or manifest name to a Category. Both the
// singular and the legacy plural form ("nouns", "suffixes") are accepted.
func ParseCategory(name string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories() {
		if normalized == string(c) || normalized == c.Plural() {
			return c, true
		}
	}
	return "", false
}

// Plural returns the legacy resource file stem, e.g. "nouns" for Noun
func (c Category) Plural() string {
	switch c {
	case Suffix:
		return "suffixes"
	default:
		return string(c) + "s"
	}
}

// Source supplies uniform random numbers
type Source interface {
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSource returns a PCG-backed source. A zero seed draws the seed from the
// runtime so every process run differs.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Picker is the read side of a WordBank used by the generators
type Picker interface {
	Pick(category Category) (string, error)
}

// WordBank holds the categorized word lists. It is never mutated after New.
type WordBank struct {
	lists map[Category][]string
	src   Source
}

// New creates a word bank from the given lists. The lists are copied.
func New(lists map[Category][]string, src Source) *WordBank {
	if src == nil {
		src = NewSource(0)
	}
	copied := make(map[Category][]string, len(lists))
	for category, words := range lists {
		copied[category] = append([]string(nil), words...)
	}
	return &WordBank{lists: copied, src: src}
}

// Load returns a copy of the words of a category in their original order
func (b *WordBank) Load(category Category) []string {
	return append([]string(nil), b.lists[category]...)
}

// Len returns the number of words in a category
func (b *WordBank) Len(category Category) int {
	return len(b.lists[category])
}

// Pick selects one word of the category uniformly at random, with replacement
func (b *WordBank) Pick(category Category) (string, error) {
	words := b.lists[category]
	if len(words) == 0 {
		return "", errors.EmptyCategoryError(string(category))
	}
	return words[b.src.IntN(len(words))], nil
}

// Source exposes the bank's random source so composers can share it
func (b *WordBank) Source() Source {
	return b.src
}

// Lazy defers building a WordBank until first use. The loader runs at most
// once; its result, including an error, is returned on every later call.
type Lazy struct {
	once   sync.Once
	loader func() (*WordBank, error)
	bank   *WordBank
	err    error
}

// NewLazy wraps a loader function
func NewLazy(loader func() (*WordBank, error)) *Lazy {
	return &Lazy{loader: loader}
}

// Get returns the loaded bank, loading it on the first call
func (l *Lazy) Get() (*WordBank, error) {
	l.once.Do(func() {
		l.bank, l.err = l.loader()
	})
	return l.bank, l.err
}

// Pick loads the bank if needed and picks from it
func (l *Lazy) Pick(category Category) (string, error) {
	bank, err := l.Get()
	if err != nil {
		return "", err
	}
	return bank.Pick(category)
}
