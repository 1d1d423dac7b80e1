package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

// Format selects how generated lines are printed
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, json or markdown (md)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", errors.InvalidInputError(fmt.Sprintf("unknown format %q", s)).
		WithDetails("expected text, json or markdown")
}

// Output is one command's worth of generated lines
type Output struct {
	Command string `json:"command"`
	Lines   []Line `json:"lines"`
	// Numbered prefixes text lines with their template index
	Numbered bool `json:"-"`
}

// Line is a single generated string with optional metadata
type Line struct {
	Text string `json:"text"`
	// Template is the index of the template a sentence came from
	Template *int `json:"template,omitempty"`
	// Color is a "#rrggbb" swatch shown after the text
	Color string `json:"color,omitempty"`
}

// Renderer handles output rendering
type Renderer struct {
	format   Format
	styled   bool
	wordWrap int
	lip      *lipgloss.Renderer
}

// NewRenderer creates a renderer writing for w. When styled is false no
// escape sequences are produced.
func NewRenderer(w io.Writer, format Format, styled bool) *Renderer {
	lip := lipgloss.NewRenderer(w)
	if !styled {
		lip.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		format:   format,
		styled:   styled,
		wordWrap: 80,
		lip:      lip,
	}
}

// SetColorProfile overrides the detected terminal color profile
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.lip.SetColorProfile(p)
}

// RandomColor draws a random 24-bit color as "#rrggbb"
func RandomColor(src wordbank.Source) string {
	return fmt.Sprintf("#%02x%02x%02x", src.IntN(256), src.IntN(256), src.IntN(256))
}

// Swatch renders a "#" in the given color
func (r *Renderer) Swatch(color string) string {
	return r.lip.NewStyle().Foreground(lipgloss.Color(color)).Render("#")
}

// Render formats the output in the renderer's format
func (r *Renderer) Render(out Output) (string, error) {
	switch r.format {
	case FormatJSON:
		return r.RenderJSON(out)
	case FormatMarkdown:
		return r.RenderMarkdown(out)
	default:
		return r.RenderText(out), nil
	}
}

// RenderText renders one line per entry, with a swatch after colored lines
func (r *Renderer) RenderText(out Output) string {
	lines := make([]string, 0, len(out.Lines))
	for _, line := range out.Lines {
		if out.Numbered && line.Template != nil {
			lines = append(lines, fmt.Sprintf("%3d  %s", *line.Template, line.Text))
			continue
		}
		if line.Color != "" {
			lines = append(lines, line.Text+" | "+r.Swatch(line.Color))
			continue
		}
		lines = append(lines, line.Text)
	}
	return strings.Join(lines, "\n")
}

// RenderJSON renders the output as an indented JSON document
func (r *Renderer) RenderJSON(out Output) (string, error) {
	if out.Lines == nil {
		out.Lines = []Line{}
	}
	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// RenderMarkdown renders the output as a markdown list. Styled renderers pass
// it through glamour; unstyled ones return the markdown source.
func (r *Renderer) RenderMarkdown(out Output) (string, error) {
	var b strings.Builder
	if out.Command != "" {
		fmt.Fprintf(&b, "## %s\n\n", out.Command)
	}
	for _, line := range out.Lines {
		b.WriteString("- ")
		if line.Template != nil {
			fmt.Fprintf(&b, "`#%d` ", *line.Template)
		}
		b.WriteString(escapeMarkdown(line.Text))
		if line.Color != "" {
			fmt.Fprintf(&b, " `%s`", line.Color)
		}
		b.WriteString("\n")
	}

	md := b.String()
	if !r.styled {
		return md, nil
	}
	return RenderMarkdown(md, r.wordWrap)
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderMarkdown styles markdown source for the terminal
func RenderMarkdown(md string, wordWrap int) (string, error) {
	tr, err := NewMarkdownRenderer(wordWrap)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// NewMarkdownRenderer creates a glamour renderer matched to the terminal's
// background and color support
func NewMarkdownRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()
	if profile == termenv.Ascii {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(wordWrap),
		)
	}

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}
