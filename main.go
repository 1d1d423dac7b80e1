package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dpshade/wordsmith/internal/cli"
	"github.com/dpshade/wordsmith/internal/config"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/service"
	"github.com/dpshade/wordsmith/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`wordsmith - Random title and sentence generator

USAGE:
    wordsmith [OPTIONS] [COMMAND]

OPTIONS:
    --help                  Show this help information
    --version               Print version information
    --init                  Write the built-in word lists into the resource directory
    --dir <path>            Resource directory (default: res)
    --seed <n>              Seed the random source for repeatable output (0 = random)
    --choice <clause=value> Set a title clause to always, never, a probability
                            or static:<text>; clauses are prefix, noun, title, suffix
    --no-color              Disable colored output
    --verbose               Log debug output to stderr

COMMANDS:
    (no command)            Start interactive TUI mode
    title [count]           Generate titles (default 10)
    sentence [id] [count]   Resolve a sentence template
    names [count]           Generate "<name>, <title>" lines
    templates [query]       List templates
    words <category>        Print a word list
    check                   Lint word lists and templates
    help [command]          Show CLI command help

EXAMPLES:
    wordsmith                                   # Start interactive mode
    wordsmith --init                            # Create res/ with the default corpus
    wordsmith title 5                           # Five titles
    wordsmith --seed 7 title 3 --color          # Repeatable titles with color swatches
    wordsmith --choice title=0.3 title          # Titles with an occasional ", <title>"
    wordsmith sentence --match "beware" 2       # Two sentences from the best match
    wordsmith templates --format json           # Templates as JSON

ENVIRONMENT:
    WORDSMITH_DIR, WORDSMITH_SEED, WORDSMITH_PREFIX, WORDSMITH_NOUN,
    WORDSMITH_TITLE, WORDSMITH_SUFFIX, LOG_LEVEL, NO_COLOR
    A .env file in the working directory is read first.
`)
}

// setupLogger configures the global zerolog logger for terminal output
func setupLogger(level zerolog.Level, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return log.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.NewCLIErrorHandler(false, zerolog.Nop()).FormatError(err))
		os.Exit(1)
	}

	var showVersion bool
	var initLib bool
	var showHelp bool
	var noColor bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Write the built-in word lists into the resource directory")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.StringVar(&cfg.Dir, "dir", cfg.Dir, "Resource directory")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Log debug output to stderr")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.Func("choice", "Title clause choice as clause=value (repeatable)", func(s string) error {
		clause, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("expected clause=value, got %q", s)
		}
		return cfg.SetChoice(strings.TrimSpace(clause), strings.TrimSpace(value))
	})
	flag.Usage = printHelp
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("wordsmith version %s\n", version)
		os.Exit(0)
	}

	if noColor {
		cfg.NoColor = "1"
	}
	if !cfg.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	level, _ := cfg.Level() // validated by config.Load
	logger := setupLogger(level, cfg.Verbose)
	errHandler := errors.NewCLIErrorHandler(cfg.Verbose, logger)

	fail := func(err error) {
		fmt.Fprintln(os.Stderr, errHandler.HandleError(err))
		os.Exit(1)
	}

	svc, err := service.NewService(cfg, logger)
	if err != nil {
		fail(err)
	}
	logger.Debug().Str("dir", cfg.Dir).Uint64("seed", cfg.Seed).Str("policy", fmt.Sprintf("%+v", cfg.Policy())).Msg("configuration loaded")

	if initLib {
		written, err := svc.InitLibrary()
		if err != nil {
			fail(err)
		}
		for _, path := range written {
			fmt.Println("Created", path)
		}
		fmt.Printf("Initialized word lists in %s\n", svc.BaseDir())
		return
	}

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		styled := cfg.ColorEnabled() && isatty.IsTerminal(os.Stdout.Fd())
		cliHandler := cli.NewCLI(svc, os.Stdout, os.Stderr, styled, logger)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fail(err)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fail(err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}
