package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Corpus is the optional words.yaml manifest describing where word lists,
// templates and names come from
type Corpus struct {
	Name          string                `yaml:"name,omitempty"`
	Description   string                `yaml:"description,omitempty"`
	Words         map[string]WordSource `yaml:"words"`
	Templates     []string              `yaml:"templates,omitempty"`
	TemplatesFile string                `yaml:"templates_file,omitempty"`
	NamesFile     string                `yaml:"names_file,omitempty"`

	FilePath string `yaml:"-"`
}

// WordSource is either a file name relative to the corpus directory or an
// inline list of words:
//
//	words:
//	  noun: nouns.txt
//	  title: [the Wise, the Bold]
type WordSource struct {
	File  string
	Words []string
}

// UnmarshalYAML accepts a scalar file name or a sequence of words
func (w *WordSource) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		w.File = value.Value
		return nil
	case yaml.SequenceNode:
		return value.Decode(&w.Words)
	default:
		return fmt.Errorf("line %d: word source must be a file name or a list of words", value.Line)
	}
}

// MarshalYAML writes the form that was read
func (w WordSource) MarshalYAML() (interface{}, error) {
	if w.File != "" {
		return w.File, nil
	}
	return w.Words, nil
}
