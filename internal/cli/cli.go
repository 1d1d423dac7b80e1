package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dpshade/wordsmith/internal/clipboard"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/renderer"
	"github.com/dpshade/wordsmith/internal/service"
	"github.com/dpshade/wordsmith/internal/validation"
)

const (
	defaultTitleCount = 10
	defaultNameCount  = 10
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
	out     io.Writer
	errOut  io.Writer
	styled  bool
	logger  zerolog.Logger
}

// NewCLI creates a new CLI instance. Generated output goes to out, status
// messages to errOut.
func NewCLI(svc *service.Service, out, errOut io.Writer, styled bool, logger zerolog.Logger) *CLI {
	return &CLI{
		service: svc,
		out:     out,
		errOut:  errOut,
		styled:  styled,
		logger:  logger,
	}
}

// options are the flags every command accepts after its name
type options struct {
	format renderer.Format
	copy   bool
	color  bool
	match  string
}

// parseArgs splits flags from positional arguments
func parseArgs(command string, args []string) (options, []string, error) {
	opts := options{format: renderer.FormatText}
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f", "--match", "-m":
			if i+1 >= len(args) {
				return opts, nil, errors.InvalidCommandError(command, fmt.Sprintf("%s requires a value", arg))
			}
			i++
			if arg == "--match" || arg == "-m" {
				opts.match = args[i]
				continue
			}
			format, err := renderer.ParseFormat(args[i])
			if err != nil {
				return opts, nil, err
			}
			opts.format = format
		case "--copy", "-c":
			opts.copy = true
		case "--color":
			opts.color = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return opts, nil, errors.InvalidCommandError(command, fmt.Sprintf("unknown flag %s", arg))
			}
			positional = append(positional, arg)
		}
	}

	return opts, positional, nil
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]
	c.logger.Debug().Str("command", command).Strs("args", commandArgs).Msg("executing command")

	switch command {
	case "help", "-h", "--help":
		return c.printHelp(commandArgs)
	}

	opts, positional, err := parseArgs(command, commandArgs)
	if err != nil {
		return err
	}

	switch command {
	case "title", "titles":
		return c.generateTitles(opts, positional)
	case "sentence", "sentences":
		return c.generateSentences(opts, positional)
	case "names", "name":
		return c.generateNames(opts, positional)
	case "templates", "ls":
		return c.listTemplates(opts, positional)
	case "words":
		return c.listWords(opts, positional)
	case "check", "lint":
		return c.checkCorpus(opts, positional)
	default:
		return errors.CommandNotFoundError(command).
			WithDetails("Use 'help' for usage information")
	}
}

// countArg parses an optional count, falling back to def
func countArg(args []string, pos int, def int) (int, error) {
	if len(args) <= pos {
		return def, nil
	}
	return validation.ParseCount(args[pos])
}

func (c *CLI) generateTitles(opts options, args []string) error {
	if len(args) > 1 {
		return errors.InvalidCommandError("title", "expected at most one argument: [count]")
	}
	count, err := countArg(args, 0, defaultTitleCount)
	if err != nil {
		return err
	}

	out := renderer.Output{Command: "title"}
	for i := 0; i < count; i++ {
		title, err := c.service.GenerateTitle()
		if err != nil {
			return fmt.Errorf("failed to generate title: %w", err)
		}
		line := renderer.Line{Text: title}
		if opts.color {
			line.Color = renderer.RandomColor(c.service.Source())
		}
		out.Lines = append(out.Lines, line)
	}

	return c.emit(opts, out)
}

func (c *CLI) generateSentences(opts options, args []string) error {
	var tmpl models.Template
	var err error
	countPos := 1

	switch {
	case opts.match != "":
		tmpl, err = c.service.MatchTemplate(opts.match)
		countPos = 0
	case len(args) == 0 || args[0] == "random" || args[0] == "-":
		tmpl, err = c.service.RandomTemplate()
	default:
		var templates []models.Template
		templates, err = c.service.ListTemplates()
		if err != nil {
			return err
		}
		var index int
		index, err = validation.ParseIndex(args[0], len(templates))
		if err == nil {
			tmpl = templates[index]
		}
	}
	if err != nil {
		return err
	}

	if len(args) > countPos+1 {
		return errors.InvalidCommandError("sentence", "expected at most two arguments: [id] [count]")
	}
	count, err := countArg(args, countPos, 1)
	if err != nil {
		return err
	}

	lines, err := c.service.GenerateSentences(tmpl, count)
	if err != nil {
		return fmt.Errorf("failed to generate sentence: %w", err)
	}

	out := renderer.Output{Command: "sentence"}
	for _, text := range lines {
		index := tmpl.Index
		out.Lines = append(out.Lines, renderer.Line{Text: text, Template: &index})
	}

	return c.emit(opts, out)
}

func (c *CLI) generateNames(opts options, args []string) error {
	if len(args) > 1 {
		return errors.InvalidCommandError("names", "expected at most one argument: [count]")
	}
	count, err := countArg(args, 0, defaultNameCount)
	if err != nil {
		return err
	}

	lines, err := c.service.GenerateNamedTitles(count)
	if err != nil {
		return fmt.Errorf("failed to generate names: %w", err)
	}

	return c.emit(opts, textOutput("names", lines))
}

func (c *CLI) listTemplates(opts options, args []string) error {
	query := strings.Join(args, " ")
	if opts.match != "" {
		query = opts.match
	}

	templates, err := c.service.SearchTemplates(query)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	out := renderer.Output{Command: "templates", Numbered: true}
	for _, t := range templates {
		index := t.Index
		out.Lines = append(out.Lines, renderer.Line{Text: t.Text, Template: &index})
	}

	return c.emit(opts, out)
}

func (c *CLI) listWords(opts options, args []string) error {
	if len(args) != 1 {
		return errors.InvalidCommandError("words", "expected one argument: <category>").
			WithDetails("categories: noun, adjective, place, suffix, title")
	}

	words, err := c.service.Words(args[0])
	if err != nil {
		return err
	}

	return c.emit(opts, textOutput("words", words))
}

func (c *CLI) checkCorpus(opts options, args []string) error {
	if len(args) > 0 {
		return errors.InvalidCommandError("check", "takes no arguments")
	}

	result, err := c.service.Check()
	if err != nil {
		return err
	}
	c.logger.Debug().Strs("summary", result.Summary()).Bool("valid", result.Valid).Msg("lint finished")

	var lines []string
	for _, e := range result.Errors {
		lines = append(lines, fmt.Sprintf("error   %s: %s", e.Field, e.Message))
	}
	for _, w := range result.Warnings {
		lines = append(lines, fmt.Sprintf("warning %s: %s", w.Field, w.Message))
	}
	if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("%s: no problems found", c.service.BaseDir()))
	}

	if err := c.emit(opts, textOutput("check", lines)); err != nil {
		return err
	}

	if appErr := result.ToAppError(); appErr != nil {
		return appErr
	}
	return nil
}

func textOutput(command string, lines []string) renderer.Output {
	out := renderer.Output{Command: command}
	for _, line := range lines {
		out.Lines = append(out.Lines, renderer.Line{Text: line})
	}
	return out
}

// emit renders the output, prints it and copies the plain text if asked
func (c *CLI) emit(opts options, out renderer.Output) error {
	r := renderer.NewRenderer(c.out, opts.format, c.styled)
	content, err := r.Render(out)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	if content != "" {
		fmt.Fprintln(c.out, strings.TrimRight(content, "\n"))
	}

	if opts.copy {
		plain := content
		if opts.format == renderer.FormatText {
			plain = renderer.NewRenderer(io.Discard, renderer.FormatText, false).RenderText(out)
		}
		if statusMsg, err := clipboard.CopyWithFallback(plain); err != nil {
			// Output was already printed; a missing clipboard is only a warning
			fmt.Fprintf(c.errOut, "Warning: %v\n", err)
		} else {
			fmt.Fprintln(c.errOut, statusMsg)
		}
	}

	return nil
}

func (c *CLI) printUsage() error {
	fmt.Fprintln(c.out, `wordsmith - Headless CLI mode

Usage: wordsmith [global flags] <command> [arguments] [options]

Commands:
  title [count]              Generate titles (default 10)
  sentence [id] [count]      Resolve a template (random when id is omitted)
  names [count]              Generate "<name>, <title>" lines (default 10)
  templates [query]          List templates, fuzzy-filtered by query
  words <category>           Print a category's word list
  check                      Lint word lists and templates
  help [command]             Show help

Options:
  --format, -f <format>      Output format (text, json, markdown)
  --copy, -c                 Copy the output to the clipboard

Run without a command to start the interactive interface.
Use 'wordsmith help <command>' for detailed help on a specific command.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	switch command {
	case "title", "titles":
		fmt.Fprintln(c.out, `title - Generate titles

Usage: wordsmith title [count] [options]

Options:
  --format, -f <format>  Output format (text, json, markdown)
  --color                Follow each title with a random true-color swatch
  --copy, -c             Copy the titles to the clipboard

Examples:
  wordsmith title 5
  wordsmith --seed 42 title 3 --color`)

	case "sentence", "sentences":
		fmt.Fprintln(c.out, `sentence - Resolve a template against the word lists

Usage: wordsmith sentence [id|random] [count] [options]

Options:
  --match, -m <query>    Use the best fuzzy match for query instead of an id
  --format, -f <format>  Output format (text, json, markdown)
  --copy, -c             Copy the sentences to the clipboard

Slots {noun}, {adjective}, {place} and {title} are filled left to right.
Resolution stops at the first other slot; the rest is printed unchanged.

Examples:
  wordsmith sentence 0 3
  wordsmith sentence --match "beware" 2`)

	case "names", "name":
		fmt.Fprintln(c.out, `names - Generate "<name>, <title>" lines

Usage: wordsmith names [count] [options]

Names are read from names.txt in the resource directory.`)

	case "templates", "ls":
		fmt.Fprintln(c.out, `templates - List templates

Usage: wordsmith templates [query] [options]

Templates are listed with the id used by 'sentence'. A query filters them
by fuzzy match, best match first.`)

	case "words":
		fmt.Fprintln(c.out, `words - Print a word list

Usage: wordsmith words <category> [options]

Categories: noun, adjective, place, suffix, title (plural forms accepted)`)

	case "check", "lint":
		fmt.Fprintln(c.out, `check - Lint the corpus

Usage: wordsmith check [options]

Reports empty categories, words containing braces, duplicate words and
templates that will only partially resolve. Exits non-zero on errors.`)

	default:
		return errors.CommandNotFoundError(command).
			WithDetails("Use 'help' for usage information")
	}

	return nil
}
