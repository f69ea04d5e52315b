package main

import (
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mgomes/cael/cael"
)

var (
	accentColor = lipgloss.Color("#0EA5E9")
	okColor     = lipgloss.Color("#22C55E")
	failColor   = lipgloss.Color("#F43F5E")
	mutedColor  = lipgloss.Color("#6B7280")
	keyColor    = lipgloss.Color("#EAB308")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(okColor)
	failStyle   = lipgloss.NewStyle().Foreground(failColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle    = lipgloss.NewStyle().Foreground(keyColor)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// replCommand starts the full-screen REPL on a terminal and the line editor
// otherwise, or when -p is given.
func replCommand(args []string) error {
	opts, _, err := getopt.Getopts(args, "p")
	if err != nil {
		return fmt.Errorf("cael repl: %w", err)
	}
	fd := os.Stdin.Fd()
	plain := !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	for _, opt := range opts {
		if opt.Option == 'p' {
			plain = true
		}
	}
	if plain {
		return runPlainREPL(os.Stdout)
	}
	_, err = tea.NewProgram(newREPLModel(), tea.WithAltScreen()).Run()
	return err
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replKeys struct {
	Prev       key.Binding
	Next       key.Binding
	Submit     key.Binding
	Complete   key.Binding
	ToggleHelp key.Binding
	ToggleVars key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

var keys = replKeys{
	Prev:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	ToggleHelp: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	ToggleVars: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
	Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

func (k replKeys) footer() []key.Binding {
	return []key.Binding{k.ToggleHelp, k.ToggleVars, k.Clear, k.Quit}
}

type replModel struct {
	textInput textinput.Model
	session   *replSession

	history []historyEntry
	// recalled holds submitted inputs for up/down navigation; cursor is -1
	// when not navigating.
	recalled []string
	cursor   int
	// pending collects lines of a statement that does not parse yet.
	pending []string

	width, height int
	initialized   bool
	showHelp      bool
	showVars      bool
	quitting      bool
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "let x = 1;"
	ti.CharLimit = 1000
	ti.Width = 60
	ti.Prompt = promptMain
	ti.PromptStyle = promptStyle
	ti.Focus()

	return replModel{
		textInput: ti,
		session:   newREPLSession(),
		cursor:    -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			if len(m.pending) > 0 {
				m.setPending(nil)
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, keys.ToggleVars):
			m.showVars = !m.showVars
			return m, nil
		case key.Matches(msg, keys.ToggleHelp):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Prev):
			return m.recall(-1), nil
		case key.Matches(msg, keys.Next):
			return m.recall(1), nil
		case key.Matches(msg, keys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// recall moves through previously submitted inputs. Moving past the newest
// entry clears the input.
func (m replModel) recall(delta int) replModel {
	if len(m.recalled) == 0 {
		return m
	}
	switch {
	case m.cursor == -1 && delta < 0:
		m.cursor = len(m.recalled) - 1
	case m.cursor == -1:
		return m
	default:
		m.cursor = max(m.cursor+delta, 0)
	}
	if m.cursor >= len(m.recalled) {
		m.cursor = -1
		m.textInput.SetValue("")
	} else {
		m.textInput.SetValue(m.recalled[m.cursor])
	}
	m.textInput.CursorEnd()
	return m
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := m.textInput.Value()
	m.textInput.SetValue("")
	m.cursor = -1

	if len(m.pending) == 0 {
		line = strings.TrimSpace(line)
		if line == "" {
			return m, nil
		}
		if strings.HasPrefix(line, ":") {
			return m.handleCommand(line)
		}
	}

	source := strings.Join(append(m.pending, line), "\n")
	if _, err := cael.Parse(source); err != nil && isIncomplete(err) {
		m.setPending(append(m.pending, line))
		return m, nil
	}
	m.setPending(nil)

	output, isErr := m.evaluate(source)
	m.history = append(m.history, historyEntry{input: source, output: output, isErr: isErr})
	m.recalled = append(m.recalled, strings.ReplaceAll(source, "\n", " "))
	return m, nil
}

func (m *replModel) setPending(lines []string) {
	m.pending = lines
	if len(lines) == 0 {
		m.textInput.Prompt = promptMain
		return
	}
	m.textInput.Prompt = promptCont
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	name := strings.Fields(input)[0]
	switch name {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.session.reset()
		m.history = append(m.history, historyEntry{input: input, output: "Environment reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Unknown command: " + name,
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	prefix := trailingWord(input)
	if prefix == "" {
		return m
	}

	switch completions := m.session.completions(prefix); len(completions) {
	case 0:
	case 1:
		m.textInput.SetValue(strings.TrimSuffix(input, prefix) + completions[0])
		m.textInput.CursorEnd()
	default:
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

// trailingWord returns the run of letters at the end of input.
func trailingWord(input string) string {
	i := len(input)
	for i > 0 {
		c := input[i-1]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		i--
	}
	return input[i:]
}

func (m replModel) evaluate(input string) (string, bool) {
	output, err := m.session.eval(input)
	if err == nil {
		return output, false
	}
	if output == "" {
		return err.Error(), true
	}
	return output + "\n" + err.Error(), true
}

func (m replModel) View() string {
	switch {
	case !m.initialized:
		return "Loading..."
	case m.quitting:
		return mutedStyle.Render("Goodbye!\n")
	}

	names := m.session.names()
	reserved := 8 + len(m.pending)
	if m.showHelp {
		reserved += 10
	}
	if m.showVars {
		reserved += len(names) + 3
	}

	var b strings.Builder
	b.WriteString(titleStyle.Padding(0, 1).Render("Cael REPL") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")
	b.WriteString(m.renderHistory(m.height - reserved))

	if m.showVars {
		b.WriteString(renderVarsPanel(m.session, names) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	for _, line := range m.pending {
		b.WriteString(promptStyle.Render(promptMain) + line + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	hints := make([]string, 0, len(keys.footer()))
	for _, binding := range keys.footer() {
		help := binding.Help()
		hints = append(hints, keyStyle.Render(help.Key)+mutedStyle.Render(" "+help.Desc))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

// renderHistory renders the newest entries that fit in rows.
func (m replModel) renderHistory(rows int) string {
	start := 0
	if len(m.history) > rows {
		start = max(len(m.history)-rows, 0)
	}

	var b strings.Builder
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + strings.ReplaceAll(entry.input, "\n", "\n    ") + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + failStyle.Render("✗ "+entry.output) + "\n\n")
			continue
		}
		b.WriteString("  " + okStyle.Render("→ "+entry.output) + "\n\n")
	}
	return b.String()
}

func renderVarsPanel(session *replSession, names []string) string {
	if len(names) == 0 {
		return panelStyle.Render(mutedStyle.Render("No variables defined"))
	}

	lines := []string{titleStyle.Render("Variables")}
	for _, name := range names {
		val, ok := session.lookup(name)
		if !ok {
			continue
		}
		label := keyStyle.Render(name)
		if session.env.IsConstant(name) {
			label += mutedStyle.Render(" (const)")
		}
		lines = append(lines, fmt.Sprintf("  %s = %s", label, val.String()))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	rows := [][2]string{
		{"↑/↓", "Navigate input history"},
		{"Tab", "Autocomplete keywords and names"},
		{"Enter", "Evaluate input, or continue an open statement"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables panel"},
		{":clear", "Clear history"},
		{":reset", "Reset environment"},
		{":quit", "Exit REPL"},
	}

	lines := []string{titleStyle.Render("Help")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			keyStyle.Render(fmt.Sprintf("%-8s", row[0])),
			mutedStyle.Render(row[1])))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
