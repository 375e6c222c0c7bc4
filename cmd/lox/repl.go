package main

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/CatkinYang/golox/lox"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	replPrompt     = "lox> "
	replContPrompt = "...  "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	interp      *lox.Interpreter
	out         *bytes.Buffer
	pending     []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg lox.Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement or expression..."
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	out := &bytes.Buffer{}
	cfg.Stdout = out

	return replModel{
		textInput:  ti,
		interp:     lox.NewInterpreter(cfg),
		out:        out,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			return m.handleEnter()
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleEnter() (tea.Model, tea.Cmd) {
	line := m.textInput.Value()
	trimmed := strings.TrimSpace(line)
	if trimmed == "" && len(m.pending) == 0 {
		return m, nil
	}

	if len(m.pending) == 0 && strings.HasPrefix(trimmed, ":") {
		var cmd tea.Cmd
		m, cmd = m.handleCommand(trimmed)
		m.textInput.SetValue("")
		m.historyIdx = -1
		return m, cmd
	}

	m.pending = append(m.pending, line)
	source := strings.Join(m.pending, "\n")
	m.textInput.SetValue("")
	m.historyIdx = -1
	if needsMoreInput(m.interp, source) {
		m.textInput.Prompt = replContPrompt
		return m, nil
	}

	m.pending = nil
	m.textInput.Prompt = replPrompt
	output, isErr := m.evaluate(source)
	m.history = append(m.history, historyEntry{
		input:  source,
		output: output,
		isErr:  isErr,
	})
	m.cmdHistory = append(m.cmdHistory, strings.ReplaceAll(source, "\n", " "))
	return m, nil
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.interp.Reset()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Environment reset",
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	completions := completeLine(input, m.interp)
	if len(completions) == 1 {
		m.textInput.SetValue(completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		words := make([]string, len(completions))
		for i, c := range completions {
			words[i] = c[strings.LastIndexFunc(c, func(r rune) bool { return !isIdentRune(r) })+1:]
		}
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(words, ", "),
		})
	}
	return m
}

// evaluate runs source and returns what it printed, followed by the value
// of a lone expression or the error that stopped it.
func (m replModel) evaluate(source string) (string, bool) {
	m.out.Reset()
	val, isExpr, err := m.interp.Eval(context.Background(), source)
	printed := strings.TrimRight(m.out.String(), "\n")

	var parts []string
	if printed != "" {
		parts = append(parts, printed)
	}
	switch {
	case err != nil:
		parts = append(parts, err.Error())
	case isExpr:
		parts = append(parts, val.String())
	case len(parts) == 0:
		parts = append(parts, "ok")
	}
	return strings.Join(parts, "\n"), err != nil
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Lox REPL")
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(0, min(m.width-2, 60)))) + "\n\n")

	globals := m.interp.Globals()
	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showVars {
		reservedLines += len(globals) + 3
	}
	availableHeight := max(1, m.height-reservedLines)

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(globals))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render("  "+line) + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderVarsPanel(globals map[string]lox.Value) string {
	if len(globals) == 0 {
		return borderStyle.Render(mutedStyle.Render("No globals defined"))
	}

	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Globals")}
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s = %s", varNameStyle.Render(name), globals[name].String()))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete keywords and globals"},
		{"Enter", "Run input (unfinished blocks continue)"},
		{":help", "Toggle this help"},
		{":vars", "Toggle globals panel"},
		{":clear", "Clear history"},
		{":reset", "Drop every global"},
		{":quit", "Exit REPL"},
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help")}
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (a *app) replCommand(args []string) error {
	if len(args) > 0 {
		return usageError(fmt.Errorf("lox repl: unexpected arguments %v", args))
	}
	model := newREPLModel(lox.Config{Logger: a.logger, MaxCallDepth: a.config.MaxCallDepth})
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
