// Package engine resolves "{category}" slots in sentence templates.
//
// Slots are found by locating the first '{' and the first '}' in the working
// string independently, not by matching brace pairs. Resolution stops at the
// first slot whose name is not one of the resolvable categories; whatever is
// left in the string at that point is the final output.
package engine

import (
	"strings"

	"github.com/dpshade/wordsmith/internal/wordbank"
)

// Resolvable lists the categories a sentence slot may name. Suffixes only
// appear in composed titles and stop resolution when used in a template.
var Resolvable = []wordbank.Category{
	wordbank.Noun,
	wordbank.Adjective,
	wordbank.Title,
	wordbank.Place,
}

// maxSteps bounds resolution when substituted words themselves carry slots.
const maxSteps = 4096

// Sentence is a template being resolved
type Sentence struct {
	inner string
}

// NewSentence creates a sentence from a raw template
func NewSentence(template string) *Sentence {
	return &Sentence{inner: template}
}

// String returns the current, possibly partially resolved, text
func (s *Sentence) String() string {
	return s.inner
}

// NextSlot returns the text strictly between the first '{' and the first '}'.
// ok is false when either brace is missing. When the first '}' comes before the
// first '{' there is no text between them and the empty name is returned.
func (s *Sentence) NextSlot() (name string, ok bool) {
	open := strings.IndexByte(s.inner, '{')
	closing := strings.IndexByte(s.inner, '}')
	if open < 0 || closing < 0 {
		return "", false
	}
	if closing <= open {
		return "", true
	}
	return s.inner[open+1 : closing], true
}

// ReplaceSlot puts word into the first "{slot}" occurrence. It is a no-op when
// the literal token is not present.
func (s *Sentence) ReplaceSlot(slot, word string) {
	s.inner = strings.Replace(s.inner, "{"+slot+"}", word, 1)
}

// resolvable reports whether a slot name is substituted by the engine
func resolvable(name string) (wordbank.Category, bool) {
	for _, c := range Resolvable {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Resolve substitutes slots left to right until none remain or an
// unrecognized slot is reached. Only sampling failures are errors.
func (s *Sentence) Resolve(bank wordbank.Picker) (string, error) {
	steps := 0
	for {
		name, ok := s.NextSlot()
		if !ok {
			break
		}
		category, ok := resolvable(name)
		if !ok {
			break
		}
		word, err := bank.Pick(category)
		if err != nil {
			return "", err
		}
		before := s.inner
		s.ReplaceSlot(name, word)
		if s.inner == before {
			// nothing was consumed, so the next scan would find the same slot
			break
		}
		steps++
		if steps >= maxSteps {
			break
		}
	}
	return s.inner, nil
}

// GenerateSentence resolves a fresh copy of template against bank
func GenerateSentence(template string, bank wordbank.Picker) (string, error) {
	return NewSentence(template).Resolve(bank)
}

// Slots lists every "{...}" token of a template in order of appearance, using
// matched scanning. Unterminated '{' and stray '}' are ignored.
func Slots(template string) []string {
	var slots []string
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return slots
		}
		closing := strings.IndexByte(rest[open+1:], '}')
		if closing < 0 {
			return slots
		}
		slots = append(slots, rest[open+1:open+1+closing])
		rest = rest[open+1+closing+1:]
	}
}
