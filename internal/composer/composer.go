// Package composer assembles multi-clause titles such as
// `Old Mill, the Wise of the Lake` from independent inclusion decisions.
package composer

import (
	"fmt"
	"strings"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

// Branch selects the tail of a composed title
type Branch int

const (
	// BranchOfTheNoun appends [", <title>"] " of the <noun>"
	BranchOfTheNoun Branch = iota
	// BranchOfPlace appends [", <title>"] " of <place>"
	BranchOfPlace
	// BranchOfSuffix appends [", <title>"] " of <suffix>"
	BranchOfSuffix
	// BranchEpithet appends `, "The <noun>"`
	BranchEpithet
)

// Branches lists every branch; each is drawn with equal probability
var Branches = []Branch{BranchOfTheNoun, BranchOfPlace, BranchOfSuffix, BranchEpithet}

func (b Branch) String() string {
	switch b {
	case BranchOfTheNoun:
		return "of-the-noun"
	case BranchOfPlace:
		return "of-place"
	case BranchOfSuffix:
		return "of-suffix"
	case BranchEpithet:
		return "epithet"
	default:
		return fmt.Sprintf("branch(%d)", int(b))
	}
}

// Policy holds the inclusion choice of every optional clause
type Policy struct {
	Prefix Choice
	Noun   Choice
	Title  Choice
	Suffix Choice
}

// DefaultPolicy includes every clause, leaving the branch as the only
// structural variation
func DefaultPolicy() Policy {
	return Policy{
		Prefix: Always(),
		Noun:   Always(),
		Title:  Always(),
		Suffix: Always(),
	}
}

// Composer builds titles from a word bank
type Composer struct {
	bank   *wordbank.WordBank
	src    wordbank.Source
	policy Policy
}

// New creates a composer drawing words from bank. Branch and chance draws use
// the bank's random source.
func New(bank *wordbank.WordBank, policy Policy) *Composer {
	return &Composer{
		bank:   bank,
		src:    bank.Source(),
		policy: policy,
	}
}

// Policy returns the composer's inclusion policy
func (c *Composer) Policy() Policy {
	return c.policy
}

// Generate composes one title with a uniformly drawn branch
func (c *Composer) Generate() (string, error) {
	branch := Branches[c.src.IntN(len(Branches))]
	return c.GenerateBranch(branch)
}

// GenerateBranch composes one title using the given branch
func (c *Composer) GenerateBranch(branch Branch) (string, error) {
	var b strings.Builder

	err := apply(c.policy.Prefix, &b, c.src, func(b *strings.Builder) error {
		return c.appendWord(b, wordbank.Adjective, "", " ")
	})
	if err != nil {
		return "", err
	}

	// no trailing space, the tail may start with a comma
	err = apply(c.policy.Noun, &b, c.src, func(b *strings.Builder) error {
		return c.appendWord(b, wordbank.Noun, "", "")
	})
	if err != nil {
		return "", err
	}

	switch branch {
	case BranchOfTheNoun:
		err = c.appendTail(&b, wordbank.Noun, " of the ")
	case BranchOfPlace:
		err = c.appendTail(&b, wordbank.Place, " of ")
	case BranchOfSuffix:
		err = c.appendTail(&b, wordbank.Suffix, " of ")
	case BranchEpithet:
		b.WriteString(", ")
		err = apply(c.policy.Suffix, &b, c.src, func(b *strings.Builder) error {
			return c.appendWord(b, wordbank.Noun, `"The `, `"`)
		})
	default:
		err = errors.InternalError(fmt.Sprintf("unknown branch %d", int(branch)))
	}
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

// appendTail writes the optional title clause and then the branch's
// connector and word
func (c *Composer) appendTail(b *strings.Builder, category wordbank.Category, connector string) error {
	err := apply(c.policy.Title, b, c.src, func(b *strings.Builder) error {
		return c.appendWord(b, wordbank.Title, ", ", "")
	})
	if err != nil {
		return err
	}
	return apply(c.policy.Suffix, b, c.src, func(b *strings.Builder) error {
		return c.appendWord(b, category, connector, "")
	})
}

func (c *Composer) appendWord(b *strings.Builder, category wordbank.Category, before, after string) error {
	word, err := c.bank.Pick(category)
	if err != nil {
		return err
	}
	b.WriteString(before)
	b.WriteString(word)
	b.WriteString(after)
	return nil
}
