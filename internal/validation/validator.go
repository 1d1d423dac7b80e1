// Package validation checks word lists, templates and command-line arguments
// before they reach the generators.
//
// SYSTEM ARCHITECTURE ROLE:
// Generation never fails on a strange template; it just stops resolving. This
// package is where those templates get reported, so a corpus author can see
// which lines will come out partially resolved and which categories would fail
// sampling at runtime.
//
// KEY RESPONSIBILITIES:
// - Report empty categories (sampling them is a fatal EMPTY_CATEGORY at runtime)
// - Report templates whose resolution stops early and why
// - Report words that carry slot braces and would be re-resolved after substitution
// - Validate count and index arguments for the CLI and TUI
//
// INTEGRATION POINTS:
// - internal/service/service.go: Service.Check() runs Lint over the loaded corpus
// - internal/cli/cli.go: "check" command prints the ValidationResult; counts and
//   indices go through ParseCount and ParseIndex
// - internal/errors/errors.go: ValidationResult.ToAppError() converts failures to AppError format
package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dpshade/wordsmith/internal/engine"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/wordbank"
)

// MaxCount bounds how many lines a single command may generate
const MaxCount = 10000

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors,omitempty"`
	Warnings []ValidationWarning `json:"warnings,omitempty"`
}

// ValidationError represents a problem that makes generation fail
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationWarning represents output that will look wrong but still generate
type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (r *ValidationResult) addError(field, code, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message})
}

func (r *ValidationResult) addWarning(field, message string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Message: message})
}

// Validator lints a corpus
type Validator struct {
	resolvable map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	resolvable := make(map[string]bool, len(engine.Resolvable))
	for _, c := range engine.Resolvable {
		resolvable[string(c)] = true
	}
	return &Validator{resolvable: resolvable}
}

// Lint checks word lists and templates together. Templates are only flagged
// for empty categories they would actually reach.
func (v *Validator) Lint(lists map[wordbank.Category][]string, templates []models.Template) *ValidationResult {
	result := &ValidationResult{Valid: true}
	v.lintWordLists(result, lists)
	for _, t := range templates {
		v.lintTemplate(result, t, lists)
	}
	return result
}

func (v *Validator) lintWordLists(result *ValidationResult, lists map[wordbank.Category][]string) {
	for _, category := range wordbank.Categories() {
		field := "words." + string(category)
		words := lists[category]
		if len(words) == 0 {
			result.addError(field, string(errors.ErrCodeEmptyCategory),
				fmt.Sprintf("category '%s' has no words", category))
			continue
		}

		seen := make(map[string]int, len(words))
		for i, word := range words {
			if strings.ContainsAny(word, "{}") {
				result.addWarning(field, fmt.Sprintf("word %q contains slot braces", word))
			}
			if first, dup := seen[word]; dup {
				result.addWarning(field, fmt.Sprintf("word %q repeats line %d and is picked more often", word, first+1))
				continue
			}
			seen[word] = i
		}
	}
}

func (v *Validator) lintTemplate(result *ValidationResult, t models.Template, lists map[wordbank.Category][]string) {
	field := fmt.Sprintf("templates[%d]", t.Index)

	open := strings.Count(t.Text, "{")
	closing := strings.Count(t.Text, "}")
	if open != closing {
		result.addWarning(field, fmt.Sprintf("unbalanced braces (%d '{', %d '}')", open, closing))
	}
	if o, c := strings.IndexByte(t.Text, '{'), strings.IndexByte(t.Text, '}'); c >= 0 && (o < 0 || c < o) {
		result.addWarning(field, "'}' appears before the first '{'; no slot will be resolved")
	}

	for _, slot := range engine.Slots(t.Text) {
		if !v.resolvable[slot] {
			result.addWarning(field, fmt.Sprintf("resolution stops at {%s}; the rest of the template is printed as-is", slot))
			return
		}
		if len(lists[wordbank.Category(slot)]) == 0 {
			result.addError(field, string(errors.ErrCodeEmptyCategory),
				fmt.Sprintf("slot {%s} samples an empty category", slot))
			return
		}
	}
}

// Summary returns error and warning counts by field, sorted by field name
func (r *ValidationResult) Summary() []string {
	counts := make(map[string][2]int)
	for _, e := range r.Errors {
		c := counts[e.Field]
		c[0]++
		counts[e.Field] = c
	}
	for _, w := range r.Warnings {
		c := counts[w.Field]
		c[1]++
		counts[w.Field] = c
	}

	fields := make([]string, 0, len(counts))
	for field := range counts {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		c := counts[field]
		lines = append(lines, fmt.Sprintf("%s: %d error(s), %d warning(s)", field, c[0], c[1]))
	}
	return lines
}

// ToAppError converts validation result to AppError
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}

	if len(r.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	// Use the first error as the primary error
	appErr := errors.ValidationError(r.Errors[0].Message)

	var details []string
	for _, e := range r.Errors {
		details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	appErr.WithDetails(strings.Join(details, "; "))

	appErr.WithContext("validation_errors", r.Errors)
	if len(r.Warnings) > 0 {
		appErr.WithContext("validation_warnings", r.Warnings)
	}

	return appErr
}

// ParseCount parses a positive line count no larger than MaxCount
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.InvalidInputError(fmt.Sprintf("count %q is not a number", s))
	}
	if n < 1 || n > MaxCount {
		return 0, errors.InvalidInputError(fmt.Sprintf("count must be between 1 and %d, got %d", MaxCount, n))
	}
	return n, nil
}

// ParseIndex parses a template index in [0, size)
func ParseIndex(s string, size int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.InvalidInputError(fmt.Sprintf("template index %q is not a number", s))
	}
	if n < 0 || n >= size {
		return 0, errors.InvalidInputError(fmt.Sprintf("template index %d out of range", n)).
			WithDetails(fmt.Sprintf("%d template(s) loaded", size))
	}
	return n, nil
}
