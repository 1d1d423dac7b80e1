package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/wordsmith/internal/clipboard"
	"github.com/dpshade/wordsmith/internal/errors"
	"github.com/dpshade/wordsmith/internal/models"
	"github.com/dpshade/wordsmith/internal/renderer"
	"github.com/dpshade/wordsmith/internal/service"
)

const helpMarkdown = `# Wordsmith

Generate titles and fill sentence templates from your word lists.

| Key | Action |
| --- | --- |
| t | new title |
| s | sentence from a random template |
| n | sentence from the next template |
| p | pick a template from the list |
| c | copy the latest line |
| x | clear the history |
| ↑/↓ | scroll the history |
| ? | toggle this help |
| q | quit |

Templates fill ` + "`{noun}`, `{adjective}`, `{place}` and `{title}`" + ` left to right
and stop at the first slot they do not know.
`

// loadCompleteMsg carries the templates once the corpus has been read
type loadCompleteMsg struct {
	templates []models.Template
	err       error
}

// loadCorpusCmd reads templates and word lists off the UI goroutine
func loadCorpusCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		templates, err := svc.ListTemplates()
		if err != nil {
			return loadCompleteMsg{templates: []models.Template{}, err: err}
		}
		if _, err := svc.WordBank(); err != nil {
			return loadCompleteMsg{templates: templates, err: err}
		}
		return loadCompleteMsg{templates: templates}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewGenerator ViewMode = iota
	ViewTemplates
	ViewHelp
)

// generatedLine is one entry in the history
type generatedLine struct {
	text     string
	template int // -1 for titles
}

// Model is the bubbletea model for the interactive generator
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	templateList list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap
	errHandler   *errors.TUIErrorHandler

	// Data
	templates []models.Template
	current   int // index into templates, -1 until one is used
	lines     []generatedLine
	loading   bool
	loadErr   error

	helpContent string

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int
}

// KeyMap defines all key bindings
type KeyMap struct {
	Title        key.Binding
	Sentence     key.Binding
	NextTemplate key.Binding
	PickTemplate key.Binding
	Copy         key.Binding
	Clear        key.Binding
	Up           key.Binding
	Down         key.Binding
	Enter        key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Title, k.Sentence, k.NextTemplate, k.Copy, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Title, k.Sentence, k.NextTemplate, k.PickTemplate},
		{k.Copy, k.Clear, k.Up, k.Down},
		{k.Enter, k.Back, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Title: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "title"),
	),
	Sentence: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sentence"),
	),
	NextTemplate: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next template"),
	),
	PickTemplate: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pick template"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	// Initialize adaptive colors based on terminal background
	initializeColors()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20) // Resized on first WindowSizeMsg
	l.Title = "Templates"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	helpContent, err := renderer.RenderMarkdown(helpMarkdown, 56)
	if err != nil {
		return nil, fmt.Errorf("failed to render help: %w", err)
	}

	return &Model{
		service:      svc,
		viewMode:     ViewGenerator,
		templateList: l,
		viewport:     vp,
		help:         help.New(),
		keys:         keys,
		errHandler:   errors.NewTUIErrorHandler(false),
		templates:    []models.Template{},
		current:      -1,
		loading:      true,
		helpContent:  helpContent,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadCorpusCmd(m.service)
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case loadCompleteMsg:
		m.loading = false
		m.templates = msg.templates
		items := make([]list.Item, len(m.templates))
		for i, t := range m.templates {
			items[i] = t
		}
		m.templateList.SetItems(items)
		if msg.err != nil {
			m.loadErr = msg.err
			return m, m.setError(msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// title (1) + metadata (1) + container border (2) + status (1) + help (1) + margins (2)
		const reservedHeight = 8
		availableHeight := msg.Height - reservedHeight
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = availableHeight
		m.templateList.SetSize(msg.Width, msg.Height-2)
		m.help.Width = msg.Width
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ViewHelp:
			return m.updateHelp(msg)
		case ViewTemplates:
			return m.updateTemplates(msg)
		default:
			return m.updateGenerator(msg)
		}
	}

	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.viewMode = ViewGenerator
	}
	return m, nil
}

func (m Model) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list own every key while its filter input is focused
	if m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.templateList.FilterState() == list.FilterApplied {
			m.templateList.ResetFilter()
			return m, nil
		}
		m.viewMode = ViewGenerator
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if t, ok := m.templateList.SelectedItem().(models.Template); ok {
			m.viewMode = ViewGenerator
			m.current = t.Index
			return m, m.generateSentence(t)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m *Model) updateGeneratorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
		return nil
	case key.Matches(msg, m.keys.Clear):
		m.lines = nil
		m.refreshViewport()
		return m.setStatus("History cleared", "info")
	case key.Matches(msg, m.keys.Copy):
		return m.copyLatest()
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return nil
	}

	// Generation needs the corpus
	if m.loading {
		return m.setStatus("Still loading word lists...", "info")
	}
	if m.loadErr != nil {
		return m.setError(m.loadErr)
	}

	switch {
	case key.Matches(msg, m.keys.Title):
		return m.generateTitle()
	case key.Matches(msg, m.keys.Sentence):
		t, err := m.service.RandomTemplate()
		if err != nil {
			return m.setError(err)
		}
		m.current = t.Index
		return m.generateSentence(t)
	case key.Matches(msg, m.keys.NextTemplate):
		if len(m.templates) == 0 {
			return m.setStatus("No templates loaded", "warning")
		}
		m.current = (m.current + 1) % len(m.templates)
		return m.generateSentence(m.templates[m.current])
	case key.Matches(msg, m.keys.PickTemplate):
		if len(m.templates) == 0 {
			return m.setStatus("No templates loaded", "warning")
		}
		m.viewMode = ViewTemplates
		if m.current >= 0 {
			m.templateList.Select(m.current)
		}
	}
	return nil
}

func (m Model) updateGenerator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	cmd := m.updateGeneratorKey(msg)
	return m, cmd
}

func (m *Model) generateTitle() tea.Cmd {
	title, err := m.service.GenerateTitle()
	if err != nil {
		return m.setError(err)
	}
	m.appendLine(generatedLine{text: title, template: -1})
	return nil
}

func (m *Model) generateSentence(t models.Template) tea.Cmd {
	sentence, err := m.service.GenerateSentence(t)
	if err != nil {
		return m.setError(err)
	}
	m.appendLine(generatedLine{text: sentence, template: t.Index})
	return nil
}

func (m *Model) copyLatest() tea.Cmd {
	if len(m.lines) == 0 {
		return m.setStatus("Nothing to copy yet", "warning")
	}
	statusMsg, err := clipboard.CopyWithFallback(m.lines[len(m.lines)-1].text)
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus(statusMsg, "success")
}

func (m *Model) appendLine(line generatedLine) {
	m.lines = append(m.lines, line)
	m.refreshViewport()
	m.viewport.GotoBottom()
}

func (m *Model) refreshViewport() {
	if len(m.lines) == 0 {
		m.viewport.SetContent(StyleTextDim.Render("Press t for a title or s for a sentence."))
		return
	}
	rendered := make([]string, len(m.lines))
	last := len(m.lines) - 1
	for i, line := range m.lines {
		style := StyleLine
		if i == last {
			style = StyleLatestLine
		}
		rendered[i] = style.Width(m.viewport.Width).Render(line.text)
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
}

func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

func (m *Model) setError(err error) tea.Cmd {
	icon, _ := m.errHandler.GetErrorStyle(err)
	return m.setStatus(icon+" "+m.errHandler.FormatError(err), "error")
}

// View renders the current view
func (m Model) View() string {
	switch m.viewMode {
	case ViewHelp:
		return CenterModal(StyleModal.Render(m.helpContent), m.width, m.height)
	case ViewTemplates:
		return AddMainPadding(m.templateList.View())
	}
	return m.renderGeneratorView()
}

func (m Model) renderGeneratorView() string {
	var b strings.Builder

	b.WriteString(CreateMainHeader("Wordsmith"))
	b.WriteString("\n")

	meta := fmt.Sprintf("%d template(s) · %s", len(m.templates), m.service.BaseDir())
	if m.loading {
		meta = "Loading word lists..."
	} else if m.current >= 0 && m.current < len(m.templates) {
		meta = fmt.Sprintf("template %s · %s", m.templates[m.current].Label(), meta)
	}
	b.WriteString(CreateMetadata(meta))
	b.WriteString("\n")

	top, bottom := CreateScrollIndicators(!m.viewport.AtTop(), !m.viewport.AtBottom())
	b.WriteString(StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), bottom)))
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(CreateStatus(m.statusMsg, m.statusType))
	}
	b.WriteString("\n")
	b.WriteString(AddMainPadding(m.help.View(m.keys)))

	return b.String()
}
