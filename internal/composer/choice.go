package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

// ChoiceKind tags the variant held by a Choice
type ChoiceKind int

const (
	// AlwaysInclude always appends the clause
	AlwaysInclude ChoiceKind = iota
	// NeverInclude never appends the clause and never samples for it
	NeverInclude
	// IncludeWithProbability appends the clause when a [0,1) draw is below P
	IncludeWithProbability
	// StaticText appends fixed text in place of the clause
	StaticText
)

// Choice is the inclusion decision for one optional clause
type Choice struct {
	Kind ChoiceKind
	P    float64
	Text string
}

// Always includes the clause on every call
func Always() Choice { return Choice{Kind: AlwaysInclude} }

// Never omits the clause without drawing
func Never() Choice { return Choice{Kind: NeverInclude} }

// Chance includes the clause with probability p
func Chance(p float64) Choice { return Choice{Kind: IncludeWithProbability, P: p} }

// Static appends text verbatim instead of the clause
func Static(text string) Choice { return Choice{Kind: StaticText, Text: text} }

// String renders a choice in the form ParseChoice accepts
func (c Choice) String() string {
	switch c.Kind {
	case AlwaysInclude:
		return "always"
	case NeverInclude:
		return "never"
	case IncludeWithProbability:
		return strconv.FormatFloat(c.P, 'g', -1, 64)
	case StaticText:
		return "static:" + c.Text
	default:
		return fmt.Sprintf("choice(%d)", int(c.Kind))
	}
}

// ParseChoice reads "always", "never", a probability in [0,1] or "static:<text>"
func ParseChoice(s string) (Choice, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "", "always":
		return Always(), nil
	case "never":
		return Never(), nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "static:"); ok {
		return Static(rest), nil
	}
	p, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Choice{}, errors.InvalidInputError(fmt.Sprintf("invalid choice %q", s)).
			WithDetails("expected always, never, a probability or static:<text>")
	}
	if p < 0 || p > 1 {
		return Choice{}, errors.InvalidInputError(fmt.Sprintf("probability %v outside [0, 1]", p))
	}
	return Chance(p), nil
}

// UnmarshalText lets a Choice be decoded straight from env or yaml values
func (c *Choice) UnmarshalText(text []byte) error {
	parsed, err := ParseChoice(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText mirrors UnmarshalText
func (c Choice) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// apply runs clause against b when the choice passes. A static choice writes
// its own text instead of calling clause.
func apply(c Choice, b *strings.Builder, src wordbank.Source, clause func(*strings.Builder) error) error {
	switch c.Kind {
	case AlwaysInclude:
		return clause(b)
	case NeverInclude:
		return nil
	case IncludeWithProbability:
		if src.Float64() < c.P {
			return clause(b)
		}
		return nil
	case StaticText:
		b.WriteString(c.Text)
		return nil
	default:
		return errors.InternalError(fmt.Sprintf("unknown choice kind %d", int(c.Kind)))
	}
}
