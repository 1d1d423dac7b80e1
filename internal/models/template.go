package models

import (
	"fmt"
	"strings"
)

// Template is one sentence template from the template list
type Template struct {
	Index  int    `json:"index" yaml:"-"`
	Text   string `json:"text" yaml:"text"`
	Source string `json:"source,omitempty" yaml:"-"` // File the template was read from
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return t.Text
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	return fmt.Sprintf("#%d %s", t.Index, t.Text)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	if t.Source == "" {
		return "inline template"
	}
	return t.Source
}

// Label is the short form used in status lines
func (t Template) Label() string {
	text := strings.TrimSpace(t.Text)
	if runes := []rune(text); len(runes) > 40 {
		text = string(runes[:37]) + "..."
	}
	return fmt.Sprintf("#%d %s", t.Index, text)
}
